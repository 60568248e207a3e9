package web

import "net/http"

func (s *server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /members", s.handleCreateMember)
	mux.HandleFunc("GET /members", s.handleListMembers)
	mux.HandleFunc("GET /members/{id}", s.handleGetMember)
	mux.HandleFunc("POST /members/{id}/birthday-message", s.handleBirthdayMessage)
	mux.HandleFunc("POST /members/{id}/send-email", s.handleSendEmail)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", s.svc.Metrics.Handler())
	mux.HandleFunc("GET /debug/perf", s.handlePerf)
}
