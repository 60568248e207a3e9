package web

import (
	"context"
	"net/http"
	"time"

	"celebration/internal/adapters/email"
	"celebration/internal/adapters/greeting"
	"celebration/internal/adapters/http/metrics"
	"celebration/internal/adapters/http/middleware"
	"celebration/internal/adapters/http/perf"
	memberStore "celebration/internal/adapters/storage/member"
)

// Services holds everything the handlers depend on. It is built once in main.
type Services struct {
	MemberStore memberStore.Store
	Generator   greeting.Generator
	Sender      email.Sender
	EmailDomain string
	EmailFrom   string
	Collector   *perf.Collector  // optional; nil disables /debug/perf data
	Metrics     *metrics.Metrics // optional
	Ping        func(ctx context.Context) error
	Now         func() time.Time // nil selects time.Now
}

// Options tunes the middleware stack.
type Options struct {
	RateLimitPerSecond int // <= 0 disables rate limiting
	SlowRequestMs      int
}

type server struct {
	svc Services
}

// NewMux wires HTTP handlers and middleware for the API.
// The returned stop function releases the rate limiter and is safe to call more than once.
// PRE: s.MemberStore, s.Generator and s.Sender are non-nil
// POST: Returns a handler ready to serve; no global state is touched
func NewMux(s Services, opts Options) (http.Handler, func()) {
	srv := &server{svc: s}
	mux := http.NewServeMux()
	srv.registerRoutes(mux)

	// Innermost first: Metrics must see the request the mux annotates.
	stack := []func(http.Handler) http.Handler{s.Metrics.Middleware}
	stop := func() {}
	if opts.RateLimitPerSecond > 0 {
		limiter := middleware.NewRateLimiter(opts.RateLimitPerSecond, time.Second)
		stack = append(stack, middleware.RateLimit(limiter))
		stop = limiter.Close
	}
	stack = append(stack,
		middleware.SecurityHeaders,
		middleware.Timing(s.Collector, opts.SlowRequestMs),
	)
	return middleware.Chain(mux, stack...), stop
}
