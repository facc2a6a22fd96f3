// Package main is the entry point for the phrase-gate intake worker.
// It polls Elasticsearch for pending submissions, scores them, and
// writes decisions back alongside the Postgres history trail.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/quipshot/phrase-gate/internal/bootstrap"
	"github.com/quipshot/phrase-gate/internal/logging"
	"github.com/quipshot/phrase-gate/internal/profiling"
)

func main() {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := bootstrap.CreateLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	profiling.Start(logger)

	logger.Info("Starting phrase-gate intake worker",
		logging.String("version", cfg.Service.Version),
		logging.Duration("poll_interval", cfg.Poller.Interval),
		logging.Int("batch_size", cfg.Poller.BatchSize))

	components, err := bootstrap.NewWorkerComponents(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize components", logging.Error(err))
		os.Exit(1)
	}
	defer components.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := components.Poller.Start(ctx); err != nil {
		logger.Error("Failed to start submission poller", logging.Error(err))
		os.Exit(1)
	}

	if components.Retrier != nil {
		if err := components.Retrier.Start(ctx); err != nil {
			logger.Error("Failed to start dead letter retrier", logging.Error(err))
			components.Poller.Stop()
			os.Exit(1)
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit

	logger.Info("Shutdown signal received", logging.String("signal", sig.String()))
	cancel()

	components.Poller.Stop()
	if components.Retrier != nil {
		components.Retrier.Stop()
	}

	logger.Info("Intake worker stopped")
}
