// internal/adapters/http_server/page.go
package httpserver

import (
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"reviewdash/internal/domain"
)

const pageTitle = "Product Review Dashboard"

var dashboardTpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<script src="https://go-echarts.github.io/go-echarts-assets/assets/echarts.min.js"></script>
<style>
 body { font-family: sans-serif; margin: 24px; }
 .summary { width: 280px; margin: 24px auto; text-align: center; }
 .summary .value { font-size: 44px; font-weight: bold; }
 .row { display: flex; justify-content: space-around; flex-wrap: wrap; }
 .card { border: 1px solid #ddd; border-radius: 6px; padding: 12px; margin: 8px; }
</style>
</head>
<body>
<h1>{{ .Title }}</h1>
<hr>
<div class="card summary">
  <div>Average Rating</div>
  <div class="value">{{ .Mean }}</div>
</div>
<div class="row">
  <div class="card">{{ .HistElement }}</div>
  <div class="card">{{ .TrendElement }}</div>
</div>
{{ .HistScript }}
{{ .TrendScript }}
</body>
</html>
`))

var errorTpl = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{ .Title }}</title></head>
<body>
<h1>Error: could not load review data.</h1>
</body>
</html>
`))

func renderDashboard(w io.Writer, st *domain.Stats) error {
	hist := histogramChart(st)
	trend := trendChart(st)
	hs := hist.RenderSnippet()
	ts := trend.RenderSnippet()

	return dashboardTpl.Execute(w, map[string]any{
		"Title":        pageTitle,
		"Mean":         fmt.Sprintf("%.2f / 5.0", st.MeanRating),
		"HistElement":  template.HTML(hs.Element),
		"HistScript":   template.HTML(hs.Script),
		"TrendElement": template.HTML(ts.Element),
		"TrendScript":  template.HTML(ts.Script),
	})
}

func renderErrorPage(w io.Writer) error {
	return errorTpl.Execute(w, map[string]any{"Title": pageTitle})
}

// histogramChart is the color-scaled bar chart of rating counts.
func histogramChart(st *domain.Stats) *charts.Bar {
	labels := make([]string, 0, len(st.Histogram))
	data := make([]opts.BarData, 0, len(st.Histogram))
	maxCount := 0
	for _, rc := range st.Histogram {
		labels = append(labels, strconv.FormatFloat(rc.Rating, 'f', -1, 64))
		data = append(data, opts.BarData{Value: rc.Count})
		if rc.Count > maxCount {
			maxCount = rc.Count
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Ratings Distribution"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Rating"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count"}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Min: 0,
			Max: float32(maxCount),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#50a3ba", "#eac736", "#d94e5d"},
			},
		}),
	)
	bar.SetXAxis(labels).AddSeries("reviews", data)
	return bar
}

// trendChart is the monthly mean-rating line, y-axis clamped to [3, 5].
func trendChart(st *domain.Stats) *charts.Line {
	months := make([]string, 0, len(st.Monthly))
	data := make([]opts.LineData, 0, len(st.Monthly))
	for _, mm := range st.Monthly {
		months = append(months, mm.Month)
		data = append(data, opts.LineData{Value: mm.Mean})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Average Rating by Month"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 3, Max: 5}),
	)
	line.SetXAxis(months).AddSeries("avg rating", data,
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))
	return line
}
