// internal/adapters/http_server/handlers.go
package httpserver

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"reviewdash/internal/domain"
)

// Handlers serves the dashboard from one immutable snapshot computed at
// startup. No locking: the snapshot is read-only for the process
// lifetime.
type Handlers struct{ Snap domain.Snapshot }

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.dashboard)
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if !h.Snap.Available() {
		if err := renderErrorPage(w); err != nil {
			log.Error().Err(err).Msg("render error page failed")
		}
		return
	}
	if err := renderDashboard(w, h.Snap.Stats); err != nil {
		log.Error().Err(err).Msg("render dashboard failed")
	}
}
