package bootstrap

import (
	"flag"
	"fmt"

	"github.com/NKTHUAN-2K5/portfolio/internal/config"
	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
)

// LoadConfig loads configuration. Uses -config flag with CONFIG_PATH default.
func LoadConfig() (*config.Config, error) {
	configPath := flag.String("config", config.Path("config.yml"), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if validationErr := cfg.Validate(); validationErr != nil {
		return nil, fmt.Errorf("validate config: %w", validationErr)
	}
	return cfg, nil
}

// CreateLogger creates a logger instance from configuration.
func CreateLogger(cfg *config.Config, version string) (logger.Logger, error) {
	log, err := logger.New(cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log.With(
		logger.String("service", "portfolio-gateway"),
		logger.String("version", version),
	), nil
}
