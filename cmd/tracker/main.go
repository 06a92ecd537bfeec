package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spacesedan/sentitrack/config"
	"github.com/spacesedan/sentitrack/internal/app"
	"github.com/spacesedan/sentitrack/internal/logging"
	"github.com/spacesedan/sentitrack/internal/session"
	"github.com/spacesedan/sentitrack/internal/tracker"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg := config.Load()
	// stdout belongs to the tracker UI.
	logging.InitLoggerWith(os.Stderr, cfg.LogLevel)

	// Reads from stdin block, so interrupts keep their default behavior.
	ctx := context.Background()

	a := app.Build(ctx, cfg, app.NewArtifactCache(cfg.Artifacts))
	if a.LoadErr != nil {
		fmt.Fprintf(os.Stderr, "Cannot start: %v\n", a.LoadErr)
		os.Exit(1)
	}
	defer a.Close()

	t := tracker.New(a.Pipeline, session.New(), os.Stdout)
	if err := t.Run(ctx, os.Stdin); err != nil {
		slog.Error("[Tracker] Stopped with error", slog.String("error", err.Error()))
		a.Close()
		os.Exit(1)
	}
}
