package main

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"reviewdash/internal/adapters/observability"
	"reviewdash/internal/adapters/sheets"
	"reviewdash/internal/app"
	"reviewdash/internal/domain"
	"reviewdash/internal/shared"
)

// export fetches and aggregates one or more spreadsheet tabs and prints
// the resulting stats as a single JSON document on stdout.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("sheet", cfg.SheetID).
		Int("tabs", len(cfg.ExportGIDs)).
		Int("workers", cfg.ExportWorkers).
		Msg("export starting")

	fetcher := sheets.New(cfg.SheetBase, cfg.FetchRPS)
	svc := app.NewSnapshotService(fetcher, nil, 0)

	sem := semaphore.NewWeighted(int64(cfg.ExportWorkers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	out := make(map[string]domain.Snapshot, len(cfg.ExportGIDs))

	for _, gid := range cfg.ExportGIDs {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(gid string) {
			defer wg.Done()
			defer sem.Release(1)

			snap := svc.Load(ctx, cfg.SheetID, gid)
			if snap.Available() {
				log.Info().Str("gid", gid).Int("reviews", snap.Stats.ReviewCount).Msg("export ok")
			} else {
				log.Warn().Str("gid", gid).Str("reason", snap.Reason).Msg("export failed for tab")
			}

			mu.Lock()
			out[gid] = snap
			mu.Unlock()
		}(gid)
	}

	wg.Wait()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal().Err(err).Msg("encode export failed")
	}
	log.Info().Msg("export completed")
}
