// Package metrics exposes Prometheus counters for the HTTP surface and the
// member, message and email flows.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "celebration"

// UnmatchedRoute labels requests no registered pattern matched.
const UnmatchedRoute = "unmatched"

// Metrics owns a private registry so tests and multiple servers never collide.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	membersCreated  prometheus.Counter
	messages        *prometheus.CounterVec
	emails          *prometheus.CounterVec
}

// New registers the runtime collectors and the application metrics.
// PRE: none
// POST: Returns metrics bound to a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		membersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "members_created_total",
			Help:      "Members successfully added to the directory.",
		}),
		messages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "birthday_messages_total",
			Help:      "Birthday messages generated by tone and model.",
		}, []string{"tone", "model"}),
		emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "birthday_emails_total",
			Help:      "Birthday email requests by outcome status.",
		}, []string{"status"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.requestDuration,
		m.membersCreated,
		m.messages,
		m.emails,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// MemberCreated counts one successful create.
func (m *Metrics) MemberCreated() {
	if m == nil {
		return
	}
	m.membersCreated.Inc()
}

// MessageGenerated counts one generated message.
func (m *Metrics) MessageGenerated(tone, model string) {
	if m == nil {
		return
	}
	m.messages.WithLabelValues(tone, model).Inc()
}

// EmailHandled counts one email request by its result status (dry_run or sent).
func (m *Metrics) EmailHandled(status string) {
	if m == nil {
		return
	}
	m.emails.WithLabelValues(status).Inc()
}

// Middleware records count and latency per route pattern.
// It must wrap the ServeMux directly: the mux writes the matched pattern
// into the request it receives, and a copied request would hide it.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = UnmatchedRoute
		}
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
