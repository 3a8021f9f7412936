package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"staywatch/internal/app"
	"staywatch/internal/compliance/worker"
	"staywatch/internal/platform/config"
	"staywatch/internal/platform/httpserver"
	"staywatch/internal/platform/logger"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("start staywatch: %w", err)
	}
	defer application.Close()

	g, ctx := errgroup.WithContext(ctx)

	srv := httpserver.New(cfg.Server.Addr, application.Router())
	g.Go(func() error {
		return httpserver.Run(ctx, srv, cfg.Server.ShutdownTimeout, log)
	})

	if cfg.Scheduler.Enabled {
		scheduler, err := worker.New(application.Alerts, cfg.Scheduler.Interval, worker.WithLogger(log))
		if err != nil {
			return err
		}
		log.Info("scheduler enabled", "interval", cfg.Scheduler.Interval)
		g.Go(func() error {
			if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}
