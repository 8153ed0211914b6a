package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"volunteerhours/internal/adapters/email"
	web "volunteerhours/internal/adapters/http"
	"volunteerhours/internal/adapters/http/middleware"
	"volunteerhours/internal/adapters/http/perf"
	"volunteerhours/internal/adapters/storage"
	sessionStore "volunteerhours/internal/adapters/storage/session"
	volunteerStore "volunteerhours/internal/adapters/storage/volunteer"
	"volunteerhours/internal/config"
)

const shutdownTimeout = 10 * time.Second

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg, err := setup()
	if err != nil {
		return err
	}
	if cfg.GeneratedSecret {
		slog.Warn("config_warning", "detail", "SECRET_KEY not set; using a random key, admin logins will not survive a restart")
	}
	if cfg.DefaultPasskey {
		slog.Warn("config_warning", "detail", "admin passkey not set; using the development default")
	}
	passkeyHash, err := cfg.PasskeyHash()
	if err != nil {
		return err
	}

	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("database_ready", "path", cfg.DBPath)

	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowQueryMs)
	stores := &web.Stores{
		VolunteerStore:     volunteerStore.NewSQLiteStore(timedDB),
		ClosedSessionStore: sessionStore.NewClosedSQLiteStore(timedDB),
		OpenSessionStore:   sessionStore.NewOpenSQLiteStore(timedDB),
	}

	sessions, closeSessions, err := adminSessions(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	var sender email.Sender = email.NewNoopSender()
	if cfg.ResendKey != "" {
		sender = email.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
	} else {
		slog.Warn("config_warning", "detail", "VOLUNTEER_RESEND_KEY not set; certificate emails are logged, not sent")
	}

	handler, cleanup, err := web.NewMux(stores, web.Options{
		SecretKey:         cfg.SecretKey,
		PasskeyHash:       passkeyHash,
		Secure:            cfg.IsProduction(),
		Sessions:          sessions,
		Collector:         collector,
		RateLimit:         cfg.RateLimit,
		SlowRequestMs:     cfg.SlowRequestMs,
		EmailSender:       sender,
		EmailFrom:         cfg.EmailFrom,
		ReplyTo:           cfg.ReplyTo,
		CertificateFooter: cfg.CertificateFooter,
		Ping:              db.PingContext,
	})
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("server_starting", "addr", srv.Addr, "env", cfg.Env)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// adminSessions picks Redis when configured, otherwise an in-process store.
func adminSessions(ctx context.Context, cfg *config.Config) (middleware.SessionStore, func(), error) {
	if cfg.Redis.Addr == "" {
		return middleware.NewMemorySessionStore(), func() {}, nil
	}
	store, err := middleware.NewRedisSessionStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	slog.Info("admin_sessions_redis", "addr", cfg.Redis.Addr)
	return store, func() {
		if err := store.Close(); err != nil {
			slog.Warn("redis_close_failed", "error", err)
		}
	}, nil
}
