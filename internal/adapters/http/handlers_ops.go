package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultPerfWindow = time.Hour
	perfTopN          = 10
	healthTimeout     = 2 * time.Second
)

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.svc.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := s.svc.Ping(ctx); err != nil {
			slog.Warn("health_check_failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePerf serves the in-process timing snapshot. ?window= takes a Go duration.
func (s *server) handlePerf(w http.ResponseWriter, r *http.Request) {
	if s.svc.Collector == nil {
		writeDetail(w, http.StatusNotFound, "performance collection is disabled")
		return
	}
	window := defaultPerfWindow
	if raw := r.URL.Query().Get("window"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			writeError(w, r, invalidRequest("window must be a positive duration such as 15m, got %q", raw))
			return
		}
		window = d
	}
	writeJSON(w, http.StatusOK, s.svc.Collector.Snapshot(time.Now().Add(-window), perfTopN))
}
