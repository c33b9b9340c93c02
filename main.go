package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/generate"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/metrics"
	"github.com/Zachkp/portfolio/internal/profile"
	"github.com/Zachkp/portfolio/internal/session"
	"github.com/Zachkp/portfolio/internal/visits"
)

const (
	sweepInterval   = time.Minute
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.Setup(cfg.Server.LogLevel)
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	prof, err := profile.Load(cfg.Server.ProfilePath)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := newBackend(ctx, cfg.AI, log)
	if err != nil {
		return err
	}

	store, err := visits.Open(ctx, cfg.Visits.Driver, cfg.Visits.DSN)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}
	tracker := visits.NewTracker(store, visits.CounterKey(cfg.Server.AppID), cfg.Visits.WriteEnabled, log)

	sessions, err := newSessions(ctx, cfg, backend, prof, log)
	if err != nil {
		return err
	}
	defer sessions.Close()
	go sweepSessions(ctx, sessions)

	router, err := newRouter(&server{
		profile:        prof,
		sessions:       sessions,
		tracker:        tracker,
		logger:         log,
		cookieMaxAge:   cfg.Session.TTL,
		trustedProxies: cfg.Server.TrustedProxies,
	})
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", srv.Addr, "ai_enabled", cfg.AI.Enabled, "visits_driver", cfg.Visits.Driver)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newBackend picks the text generation backend. With AI disabled no
// network call is ever made.
func newBackend(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (generate.Backend, error) {
	if !cfg.Enabled {
		log.Info("ai features disabled")
		return generate.DisabledBackend{}, nil
	}

	var transport generate.Transport
	switch cfg.Transport {
	case "sdk":
		t, err := generate.NewSDKTransport(ctx, generate.SDKOptions{APIKey: cfg.APIKey, Model: cfg.Model})
		if err != nil {
			return nil, err
		}
		transport = t
	default:
		t, err := generate.NewHTTPTransport(&http.Client{}, cfg.Endpoint, cfg.APIKey)
		if err != nil {
			return nil, err
		}
		transport = t
	}

	b, err := generate.NewLiveBackend(transport, generate.Settings{
		MaxAttempts:    cfg.MaxAttempts,
		BackoffBase:    cfg.BackoffBase(),
		AttemptTimeout: cfg.AttemptTimeout,
	}, generate.WithLogger(log), generate.WithObserver(metrics.ObserveAttempt))
	if err != nil {
		return nil, err
	}
	return b, nil
}

func newSessions(ctx context.Context, cfg *config.Config, backend generate.Backend, prof profile.Profile, log *slog.Logger) (*session.Manager, error) {
	return session.NewManager(session.Config{
		Backend: backend,
		Actions: []session.Action{
			{Name: SummaryAction.Name, Prompt: prof.SummaryPrompt, FailureMessage: SummaryAction.Failure},
			{Name: MatchAction.Name, Prompt: prof.MatchPrompt, FailureMessage: MatchAction.Failure},
		},
		DisabledMessage: DisabledMessage,
		RatePerMinute:   cfg.AI.RatePerMinute,
		TTL:             cfg.Session.TTL,
		Context:         ctx,
		Logger:          log,
		OnChange:        metrics.ObserveSnapshot,
		OnCount:         func(n int) { metrics.ActiveSessions.Set(float64(n)) },
	})
}

func sweepSessions(ctx context.Context, sessions *session.Manager) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.Sweep()
		}
	}
}
