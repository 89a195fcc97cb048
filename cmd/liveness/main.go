package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/container-lab/liveness/pkg/config"
	"github.com/container-lab/liveness/pkg/deps"
	"github.com/container-lab/liveness/pkg/health"
	"github.com/container-lab/liveness/pkg/server"
	"github.com/container-lab/liveness/pkg/startup"
	"github.com/container-lab/liveness/pkg/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("starting liveness server",
		"port", cfg.Port,
		"root_format", cfg.RootFormat,
		"startup_checks", cfg.StartupChecks,
		"version", version.Version,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var pipeline *startup.Pipeline
	if cfg.StartupChecks {
		var set *deps.Set
		pipeline, set = deps.Pipeline(cfg, logger)
		defer func() {
			if err := set.Close(context.Background()); err != nil {
				logger.Warn("closing dependencies", "error", err)
			}
		}()
	}

	srv := server.New(server.Config{
		Addr:            cfg.Addr(),
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, health.NewRouter(health.Format(cfg.RootFormat)), pipeline, logger)

	return srv.Run(ctx)
}
