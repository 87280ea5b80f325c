package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	server "reviewdash/internal/adapters/http_server"
	"reviewdash/internal/adapters/observability"
	redisad "reviewdash/internal/adapters/redis"
	"reviewdash/internal/adapters/sheets"
	"reviewdash/internal/app"
	"reviewdash/internal/domain"
	"reviewdash/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	fetcher := sheets.New(cfg.SheetBase, cfg.FetchRPS)

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	}

	// fetch -> parse -> aggregate, exactly once; failures become the
	// error-page snapshot instead of crashing the process
	svc := app.NewSnapshotService(fetcher, cache, cfg.CacheTTL)
	snap := svc.Load(context.Background(), cfg.SheetID, cfg.SheetGID)
	if snap.Available() {
		log.Info().Int("reviews", snap.Stats.ReviewCount).Msg("dashboard data loaded")
	} else {
		log.Warn().Str("reason", snap.Reason).Msg("dashboard data unavailable, serving error page")
	}

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Snap: snap})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("dashboard listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
