package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdugdh24/matrimony-backend/internal/config"
	"github.com/gdugdh24/matrimony-backend/internal/infrastructure/container"
	"github.com/gdugdh24/matrimony-backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(cfg.Logging.Level, cfg.IsProduction())
	defer func() {
		_ = log.Sync()
	}()

	// Initialize dependency injection container
	app, err := container.NewContainer(cfg, log)
	if err != nil {
		log.Fatal("failed to initialize application", zap.Error(err))
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("error closing application", zap.Error(err))
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		if err := app.Server.Start(); err != nil {
			log.Error("server error", zap.Error(err))
			quit <- syscall.SIGTERM
		}
	}()

	// Wait for interrupt signal
	<-quit

	// Graceful shutdown, bounded by the configured timeout
	if err := app.Server.Shutdown(context.Background()); err != nil {
		log.Error("server shutdown error", zap.Error(err))
		return
	}

	log.Info("server exited properly")
}
