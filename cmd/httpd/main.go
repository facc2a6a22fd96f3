// Package main is the entry point for the phrase-gate API server.
package main

import (
	"context"
	"log"
	"os"

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

	logger.Info("Starting phrase-gate API server",
		logging.Int("port", cfg.Service.Port),
		logging.String("version", cfg.Service.Version),
		logging.Bool("debug", cfg.Service.Debug))

	components, err := bootstrap.NewHTTPComponents(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize components", logging.Error(err))
		os.Exit(1)
	}
	defer components.Close()

	if err := components.Server.RunWithGracefulShutdown(context.Background()); err != nil {
		logger.Error("Server error", logging.Error(err))
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}
