package domain

import "time"

// Review is one row of the published reviews sheet after coercion.
// Rating is nil when the source value is not numeric; ReviewedAt is nil
// when the source timestamp does not match "YYYY-MM-DD HH:MM:SS". Both
// failures are row-local and keep the row in the table.
type Review struct {
	Rating     *float64
	ReviewedAt *time.Time
	Text       string
}
