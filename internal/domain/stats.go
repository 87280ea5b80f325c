package domain

import "time"

// RatingCount is one histogram bucket: how many reviews gave exactly
// this rating value.
type RatingCount struct {
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
}

// MonthlyMean is the mean rating over one calendar month.
// Month is rendered as "YYYY-MM".
type MonthlyMean struct {
	Month string  `json:"month"`
	Mean  float64 `json:"mean"`
}

// Stats holds the three aggregates the dashboard renders. Histogram is
// ordered ascending by rating value, Monthly ascending by month key.
type Stats struct {
	MeanRating  float64       `json:"mean_rating"`
	ReviewCount int           `json:"review_count"`
	Histogram   []RatingCount `json:"histogram"`
	Monthly     []MonthlyMean `json:"monthly"`
}

// Snapshot is the dashboard's single input, computed once at startup:
// either loaded stats or a reason why the data is unavailable, never
// both. A partial dashboard is never rendered.
type Snapshot struct {
	Stats     *Stats    `json:"stats,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	FetchedAt time.Time `json:"fetched_at"`
}

func (s Snapshot) Available() bool { return s.Stats != nil }

// Unavailable folds a pipeline failure into a snapshot the presenter
// can still serve.
func Unavailable(reason string) Snapshot {
	return Snapshot{Reason: reason, FetchedAt: time.Now().UTC()}
}
