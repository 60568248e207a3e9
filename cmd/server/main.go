package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	emailPkg "celebration/internal/adapters/email"
	"celebration/internal/adapters/greeting"
	web "celebration/internal/adapters/http"
	"celebration/internal/adapters/http/metrics"
	"celebration/internal/adapters/http/perf"
	"celebration/internal/adapters/storage"
	memberStore "celebration/internal/adapters/storage/member"
	"celebration/internal/application/orchestrators"
	"celebration/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	setupLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	schema, err := storage.SchemaVersion(db)
	if err != nil {
		log.Fatalf("failed to read schema version: %v", err)
	}

	// Performance instrumentation: every store query goes through the timed wrapper
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowQueryMs)
	members := memberStore.NewSQLiteStore(timedDB)

	if cfg.Seed {
		orchestrators.ExecuteSeedMembers(ctx, orchestrators.SeedMembersDeps{MemberStore: members})
	}

	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		slog.Info("email_sender_configured", "transport", "resend")
	} else {
		sender = emailPkg.NewLogSender()
		slog.Info("email_sender_configured", "transport", "log")
	}

	handler, stopLimiter := web.NewMux(web.Services{
		MemberStore: members,
		Generator:   greeting.NewGenerator(cfg),
		Sender:      sender,
		EmailDomain: cfg.EmailDomain,
		EmailFrom:   cfg.EmailFrom,
		Collector:   collector,
		Metrics:     metrics.New(),
		Ping:        timedDB.Ping,
	}, web.Options{
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		SlowRequestMs:      cfg.SlowRequestMs,
	})
	defer stopLimiter()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second, // live generation may take the full client timeout
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server_starting",
			"version", version,
			"addr", cfg.Addr,
			"env", cfg.Env,
			"schema", schema,
			"mock_ai", cfg.MockAI,
		)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	case <-ctx.Done():
		slog.Info("server_stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown_failed", "error", err)
		}
	}
}

// setupLogger installs the process-wide slog handler: JSON in production, text otherwise.
func setupLogger(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
