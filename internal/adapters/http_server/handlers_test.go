package httpserver_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpserver "reviewdash/internal/adapters/http_server"
	"reviewdash/internal/domain"
)

func serve(t *testing.T, snap domain.Snapshot) string {
	t.Helper()
	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Snap: snap})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)

	res, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestDashboard_Loaded(t *testing.T) {
	snap := domain.Snapshot{
		Stats: &domain.Stats{
			MeanRating:  4.2,
			ReviewCount: 5,
			Histogram:   []domain.RatingCount{{Rating: 3, Count: 1}, {Rating: 4, Count: 2}, {Rating: 5, Count: 2}},
			Monthly:     []domain.MonthlyMean{{Month: "2024-01", Mean: 4.5}, {Month: "2024-02", Mean: 4.0}},
		},
		FetchedAt: time.Now().UTC(),
	}

	body := serve(t, snap)
	for _, want := range []string{
		"4.20 / 5.0",
		"Ratings Distribution",
		"Average Rating by Month",
		"echarts",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("dashboard missing %q", want)
		}
	}
	if strings.Contains(body, "could not load review data") {
		t.Fatal("loaded dashboard must not show the error heading")
	}
}

func TestDashboard_Unavailable(t *testing.T) {
	body := serve(t, domain.Unavailable("remote 500"))

	if !strings.Contains(body, "could not load review data") {
		t.Fatalf("expected error heading, got: %s", body)
	}
	// no charts, no summary card
	for _, forbidden := range []string{"echarts", "Average Rating", "/ 5.0"} {
		if strings.Contains(body, forbidden) {
			t.Fatalf("error page must not contain %q", forbidden)
		}
	}
}

func TestHealthz(t *testing.T) {
	srv := httpserver.New()
	srv.MountHandlers(&httpserver.Handlers{Snap: domain.Unavailable("n/a")})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
}
