package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/sentitrack/config"
	"github.com/spacesedan/sentitrack/internal/app"
	"github.com/spacesedan/sentitrack/internal/logging"
	"github.com/spacesedan/sentitrack/internal/router"
	"github.com/spacesedan/sentitrack/internal/session"
)

const SHUTDOWN_TIMEOUT = 10 * time.Second

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg := config.Load()
	logging.InitLoggerWith(os.Stdout, cfg.LogLevel)

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.Build(ctx, cfg, app.NewArtifactCache(cfg.Artifacts))
	defer a.Close()

	// A failed load keeps the server up so /health can report it; every
	// input route refuses with 503.
	deps := router.Deps{
		LoadErr:  a.LoadErr,
		Sessions: session.NewStore(cfg.Server.MaxSessions, cfg.Server.SessionTTL),
		MaxChars: cfg.Pipeline.MaxReviewChars,
	}
	if a.Pipeline != nil {
		deps.Pipeline = a.Pipeline
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router.Setup(deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		slog.Info("[Dashboard] Listening", slog.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Dashboard] Server failed", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[Dashboard] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Dashboard] Graceful shutdown failed", slog.String("error", err.Error()))
	}
	slog.Info("[Dashboard] Stopped")
}
