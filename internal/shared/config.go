package shared

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Published sheet the dashboard reads when nothing is configured.
const (
	DefaultSheetID = "1t8xnrlqrBlmLcX3TVxoGAq1J2EmZphFtosRG2EvivSc"
	DefaultGID     = "334481415"
)

type Config struct {
	AppEnv        string
	HTTPAddr      string
	MetricsAddr   string
	SheetBase     string
	SheetID       string
	SheetGID      string
	FetchRPS      int
	RedisAddr     string
	RedisDB       int
	RedisPass     string
	CacheTTL      time.Duration
	ExportGIDs    []string
	ExportWorkers int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", "127.0.0.1:8050"),
		MetricsAddr:   env("METRICS_ADDR", ""),
		SheetBase:     env("SHEET_BASE_URL", "https://docs.google.com"),
		SheetID:       env("SHEET_ID", DefaultSheetID),
		SheetGID:      env("SHEET_GID", DefaultGID),
		FetchRPS:      atoi("FETCH_RPS", 5),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		CacheTTL:      time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		ExportWorkers: atoi("EXPORT_WORKERS", 4),
	}
	c.ExportGIDs = splitList(env("EXPORT_GIDS", c.SheetGID))
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
