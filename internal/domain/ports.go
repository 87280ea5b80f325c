package domain

import "context"

type SheetFetcher interface {
	// FetchCSV returns the CSV export of one spreadsheet tab as text.
	FetchCSV(ctx context.Context, sheetID, gid string) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
