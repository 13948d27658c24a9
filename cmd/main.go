package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orgball2608/board-api/internal/app"
	"github.com/orgball2608/board-api/pkg/config"
	"github.com/orgball2608/board-api/pkg/logger"
	"go.uber.org/fx"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		logger.New(logger.Opts{}).Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Opts{Env: cfg.App.Env})

	application := fx.New(
		fx.Logger(log),
		app.New(cfg),
	)

	// Start the application
	startCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := application.Start(startCtx); err != nil {
		log.Error("Failed to start application", "error", err)
		os.Exit(1)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	// Gracefully shutdown the application
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer stopCancel()
	if err := application.Stop(stopCtx); err != nil {
		log.Error("Failed to stop application", "error", err)
		os.Exit(1)
	}
}
