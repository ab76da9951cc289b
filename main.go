package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"inventory/internal/app"
	"inventory/internal/config"
	"inventory/internal/logger"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("inventory failed: %v", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled or the server fails. Every error is
// returned so that deferred cleanup runs before the process exits.
func run(ctx context.Context) error {
	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer zlog.Sync() //nolint:errcheck

	// --- Wiring: storage, events, service, routes ---
	application, err := app.New(cfg, zlog)
	if err != nil {
		zlog.Error("Failed to initialize application", zap.Error(err))
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- application.Listen(cfg.AppPort)
	}()

	select {
	case err := <-serveErr:
		zlog.Error("Server failed to start", zap.Error(err))
		_ = application.Close()
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	// Graceful shutdown handling
	zlog.Info("Shutting down server...")
	if err := application.Shutdown(cfg.ShutdownTimeout); err != nil {
		zlog.Error("Error during shutdown", zap.Error(err))
		return err
	}
	zlog.Info("Server gracefully stopped")
	return nil
}
