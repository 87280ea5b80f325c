package app_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"reviewdash/internal/app"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) <= 1e-9 }

func TestAggregate_MeanRating(t *testing.T) {
	csvText := "Ratings,Review Date,Review\n" +
		"5,2024-01-01 09:00:00,good\n" +
		"5,2024-01-02 09:00:00,good\n" +
		"4,2024-02-01 09:00:00,fine\n" +
		"4,2024-02-02 09:00:00,fine\n" +
		"3,2024-03-01 09:00:00,meh\n"
	rows, err := app.ParseReviews(csvText)
	if err != nil {
		t.Fatalf("ParseReviews: %v", err)
	}
	st, err := app.Aggregate(rows)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if !almostEqual(st.MeanRating, 4.2) {
		t.Fatalf("mean: want 4.2, got %v", st.MeanRating)
	}
	if st.ReviewCount != 5 {
		t.Fatalf("count: want 5, got %d", st.ReviewCount)
	}
}

func TestParseReviews_EmptyReviewRowsDropped(t *testing.T) {
	var b strings.Builder
	b.WriteString("Ratings,Review Date,Review\n")
	for i := 0; i < 7; i++ {
		b.WriteString("4,2024-01-01 10:00:00,text\n")
	}
	for i := 0; i < 3; i++ {
		b.WriteString("1,2024-01-01 10:00:00,\n")
	}
	rows, err := app.ParseReviews(b.String())
	if err != nil {
		t.Fatalf("ParseReviews: %v", err)
	}
	if len(rows) != 7 {
		t.Fatalf("want 7 retained rows, got %d", len(rows))
	}
	st, err := app.Aggregate(rows)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if st.ReviewCount != 7 {
		t.Fatalf("aggregates over %d rows, want 7", st.ReviewCount)
	}
	if !almostEqual(st.MeanRating, 4.0) {
		t.Fatalf("dropped rows leaked into mean: %v", st.MeanRating)
	}
}

func TestAggregate_Histogram(t *testing.T) {
	csvText := "Ratings,Review Date,Review\n" +
		"1,2024-01-01 10:00:00,a\n" +
		"1,2024-01-01 10:00:00,b\n" +
		"3,2024-01-01 10:00:00,c\n" +
		"5,2024-01-01 10:00:00,d\n" +
		"5,2024-01-01 10:00:00,e\n" +
		"5,2024-01-01 10:00:00,f\n"
	rows, err := app.ParseReviews(csvText)
	if err != nil {
		t.Fatalf("ParseReviews: %v", err)
	}
	st, err := app.Aggregate(rows)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	want := []struct {
		rating float64
		count  int
	}{{1, 2}, {3, 1}, {5, 3}}
	if len(st.Histogram) != len(want) {
		t.Fatalf("histogram buckets: want %d, got %+v", len(want), st.Histogram)
	}
	total := 0
	for i, w := range want {
		got := st.Histogram[i]
		if got.Rating != w.rating || got.Count != w.count {
			t.Fatalf("bucket %d: want (%v,%d), got (%v,%d)", i, w.rating, w.count, got.Rating, got.Count)
		}
		total += got.Count
	}
	if total != len(rows) {
		t.Fatalf("histogram counts sum to %d, want %d", total, len(rows))
	}
}

func TestAggregate_MonthlyTrendOrderedAndExcludesBadDates(t *testing.T) {
	csvText := "Ratings,Review Date,Review\n" +
		"4,2024-03-15 10:00:00,a\n" +
		"2,2024-01-10 08:00:00,b\n" +
		"4,2024-01-20 08:00:00,c\n" +
		"5,not-a-date,d\n" +
		"3,2024-02-01 12:30:00,e\n"
	rows, err := app.ParseReviews(csvText)
	if err != nil {
		t.Fatalf("ParseReviews: %v", err)
	}
	st, err := app.Aggregate(rows)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}

	months := []string{"2024-01", "2024-02", "2024-03"}
	if len(st.Monthly) != len(months) {
		t.Fatalf("want %d months, got %+v", len(months), st.Monthly)
	}
	for i, m := range months {
		if st.Monthly[i].Month != m {
			t.Fatalf("month %d: want %s, got %s", i, m, st.Monthly[i].Month)
		}
	}
	if !almostEqual(st.Monthly[0].Mean, 3.0) {
		t.Fatalf("2024-01 mean: want 3.0, got %v", st.Monthly[0].Mean)
	}
	// the bad-date row still counts toward the overall mean
	if !almostEqual(st.MeanRating, 18.0/5.0) {
		t.Fatalf("overall mean: want 3.6, got %v", st.MeanRating)
	}
}

func TestParseReviews_MonthKeyRoundTrip(t *testing.T) {
	rows, err := app.ParseReviews("Ratings,Review Date,Review\n5,2024-03-15 10:00:00,nice\n")
	if err != nil {
		t.Fatalf("ParseReviews: %v", err)
	}
	if len(rows) != 1 || rows[0].ReviewedAt == nil {
		t.Fatalf("expected one row with timestamp, got %+v", rows)
	}
	if got := rows[0].ReviewedAt.Format("2006-01"); got != "2024-03" {
		t.Fatalf("month key: want 2024-03, got %s", got)
	}
}

func TestParseReviews_MissingMandatoryColumns(t *testing.T) {
	cases := []string{
		"Score,Review Date,Review\n5,2024-01-01 10:00:00,x\n",
		"Ratings,Date,Review\n5,2024-01-01 10:00:00,x\n",
	}
	for _, c := range cases {
		if _, err := app.ParseReviews(c); err == nil {
			t.Fatalf("expected error for header %q", c[:strings.IndexByte(c, '\n')])
		}
	}
}

func TestAggregate_EmptyAfterFiltering(t *testing.T) {
	rows, err := app.ParseReviews("Ratings,Review Date,Review\n5,2024-01-01 10:00:00,\n")
	if err != nil {
		t.Fatalf("ParseReviews: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected all rows filtered, got %d", len(rows))
	}
	if _, err := app.Aggregate(rows); !errors.Is(err, app.ErrNoUsableData) {
		t.Fatalf("expected ErrNoUsableData, got %v", err)
	}
}
