package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"reviewdash/internal/domain"
)

// SnapshotService runs the fetch -> parse -> aggregate pipeline and
// folds every failure into an unavailable snapshot, so the presenter
// always has something to serve. An optional cache lets a restart
// inside the TTL window skip the outbound fetch.
type SnapshotService struct {
	fetcher  domain.SheetFetcher
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewSnapshotService(f domain.SheetFetcher, c domain.Cache, ttl time.Duration) *SnapshotService {
	return &SnapshotService{fetcher: f, cache: c, cacheTTL: ttl}
}

func (s *SnapshotService) Load(ctx context.Context, sheetID, gid string) domain.Snapshot {
	key := fmt.Sprintf("snapshot:%s:%s", sheetID, gid)
	if s.cache != nil {
		var snap domain.Snapshot
		if ok, _ := s.cache.Get(ctx, key, &snap); ok && snap.Available() {
			log.Info().Str("gid", gid).Time("fetched_at", snap.FetchedAt).Msg("snapshot served from cache")
			return snap
		}
	}

	stats, err := s.build(ctx, sheetID, gid)
	if err != nil {
		log.Error().Err(err).Str("gid", gid).Msg("loading review data failed")
		return domain.Unavailable(err.Error())
	}

	snap := domain.Snapshot{Stats: stats, FetchedAt: time.Now().UTC()}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, snap, int(s.cacheTTL.Seconds()))
	}
	return snap
}

func (s *SnapshotService) build(ctx context.Context, sheetID, gid string) (*domain.Stats, error) {
	log.Info().Str("sheet", sheetID).Str("gid", gid).Msg("fetching review sheet")
	raw, err := s.fetcher.FetchCSV(ctx, sheetID, gid)
	if err != nil {
		return nil, fmt.Errorf("fetch sheet: %w", err)
	}
	log.Info().Int("bytes", len(raw)).Msg("sheet fetched, aggregating")

	rows, err := ParseReviews(raw)
	if err != nil {
		return nil, err
	}
	stats, err := Aggregate(rows)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("reviews", stats.ReviewCount).
		Float64("mean", stats.MeanRating).
		Int("months", len(stats.Monthly)).
		Msg("aggregates ready")
	return &stats, nil
}
