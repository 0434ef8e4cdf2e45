// Command smoke probes a running web application: it waits for the home
// page to answer, checks rendered content and static files, and exits
// non-zero on failure.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/creastat/circuits/internal/config"
	"github.com/creastat/circuits/internal/logging"
	"github.com/creastat/circuits/smoke"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	prober, err := smoke.New(smoke.Config{
		BaseURL:        cfg.BaseURL,
		Attempts:       cfg.Attempts,
		RetryDelay:     cfg.RetryDelay,
		RequestTimeout: cfg.RequestTimeout,
		HomeMarkers:    cfg.HomeMarkers,
		StaticPaths:    cfg.StaticPaths,
	}, smoke.WithLogger(logging.Logger))
	if err != nil {
		logging.Logger.Error("invalid smoke configuration", "error", err)
		os.Exit(1)
	}

	if _, err := prober.Run(ctx); err != nil {
		logging.Logger.Error("some checks failed", "error", err)
		stop()
		os.Exit(1)
	}
}
