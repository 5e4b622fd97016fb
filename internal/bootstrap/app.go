// Package bootstrap handles application initialization and lifecycle
// management for the portfolio gateway.
package bootstrap

import (
	"fmt"

	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
)

const version = "dev"

// Start initializes and starts the portfolio gateway.
func Start() error {
	// Phase 1: Load config and create logger
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := CreateLogger(cfg, version)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Phase 2: Setup event publisher (optional)
	publisher := SetupEventPublisher(cfg, log)

	// Phase 3: Setup and run HTTP server
	srv, err := SetupHTTPServer(cfg, publisher, log)
	if err != nil {
		return fmt.Errorf("failed to set up server: %w", err)
	}

	log.Info("Starting HTTP server",
		logger.String("host", cfg.Server.Host),
		logger.Int("port", cfg.Server.Port),
		logger.String("backend", cfg.API.BaseURL),
	)

	if runErr := srv.Run(); runErr != nil {
		log.Error("Server error", logger.Error(runErr))
		return fmt.Errorf("server error: %w", runErr)
	}

	log.Info("Server exited")
	return nil
}
