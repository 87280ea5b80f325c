package app

import (
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"reviewdash/internal/domain"
)

const reviewTimeLayout = "2006-01-02 15:04:05"

// Expected sheet headers.
const (
	colRatings = "Ratings"
	colDate    = "Review Date"
	colText    = "Review"
)

// ErrNoUsableData marks a dataset that parsed but has nothing to
// aggregate: zero rows, or zero rows left after filtering.
var ErrNoUsableData = errors.New("no usable data")

// ParseReviews turns raw CSV text into the review table. The first
// record is the header; Ratings and Review Date columns are mandatory.
// Date and rating coercion failures are row-local; rows with an empty
// Review field are dropped after coercion.
func ParseReviews(csvText string) ([]domain.Review, error) {
	r := csv.NewReader(strings.NewReader(csvText))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoUsableData
	}

	idx := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		idx[strings.TrimSpace(h)] = i
	}
	ratingIdx, ok := idx[colRatings]
	if !ok {
		return nil, fmt.Errorf("missing %q column", colRatings)
	}
	dateIdx, ok := idx[colDate]
	if !ok {
		return nil, fmt.Errorf("missing %q column", colDate)
	}
	// A sheet without a Review column simply yields zero retained rows.
	textIdx, hasText := idx[colText]

	var out []domain.Review
	for _, rec := range records[1:] {
		var rv domain.Review
		if t, err := time.Parse(reviewTimeLayout, strings.TrimSpace(field(rec, dateIdx))); err == nil {
			rv.ReviewedAt = &t
		}
		if f, err := strconv.ParseFloat(strings.TrimSpace(field(rec, ratingIdx)), 64); err == nil {
			rv.Rating = &f
		}

		if !hasText {
			continue
		}
		rv.Text = strings.TrimSpace(field(rec, textIdx))
		if rv.Text == "" {
			continue
		}
		out = append(out, rv)
	}
	return out, nil
}

func field(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}

// Aggregate computes the three derived views over the retained rows:
// overall mean rating, per-month mean (rows without a valid timestamp
// are absent from the grouping), and the rating histogram.
func Aggregate(rows []domain.Review) (domain.Stats, error) {
	type acc struct {
		sum float64
		n   int
	}

	var sum float64
	var n int
	hist := make(map[float64]int)
	months := make(map[string]*acc)

	for _, rv := range rows {
		if rv.Rating == nil {
			continue
		}
		sum += *rv.Rating
		n++
		hist[*rv.Rating]++
		if rv.ReviewedAt != nil {
			k := rv.ReviewedAt.Format("2006-01")
			a := months[k]
			if a == nil {
				a = &acc{}
				months[k] = a
			}
			a.sum += *rv.Rating
			a.n++
		}
	}
	if n == 0 {
		return domain.Stats{}, ErrNoUsableData
	}

	st := domain.Stats{
		MeanRating:  sum / float64(n),
		ReviewCount: n,
		Histogram:   make([]domain.RatingCount, 0, len(hist)),
		Monthly:     make([]domain.MonthlyMean, 0, len(months)),
	}
	for r, c := range hist {
		st.Histogram = append(st.Histogram, domain.RatingCount{Rating: r, Count: c})
	}
	sort.Slice(st.Histogram, func(i, j int) bool { return st.Histogram[i].Rating < st.Histogram[j].Rating })

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys) // "YYYY-MM" sorts chronologically
	for _, k := range keys {
		a := months[k]
		st.Monthly = append(st.Monthly, domain.MonthlyMean{Month: k, Mean: a.sum / float64(a.n)})
	}
	return st, nil
}
