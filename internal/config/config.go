// Package config holds gateway configuration loaded from YAML with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultServerPort      = 8090
	defaultServerTimeout   = 30
	defaultAPITimeout      = 10 * time.Second
	defaultUploadWorkers   = 4
	defaultFormSessionTTL  = 30 * time.Minute
	defaultRedisAddress    = "localhost:6379"
	defaultTokenTTL        = 12 * time.Hour
	defaultUploadSizeLimit = 10 << 20
)

type Config struct {
	Debug   bool          `yaml:"debug"   env:"APP_DEBUG"`
	Server  ServerConfig  `yaml:"server"`
	API     APIConfig     `yaml:"api"`
	Auth    AuthConfig    `yaml:"auth"`
	Redis   RedisConfig   `yaml:"redis"`
	Uploads UploadsConfig `yaml:"uploads"`
}

type ServerConfig struct {
	Host         string        `yaml:"host"          env:"SERVER_HOST"`
	Port         int           `yaml:"port"          env:"SERVER_PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"  env:"CORS_ORIGINS"`
}

// APIConfig points at the portfolio REST backend the gateway consumes.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"PORTFOLIO_API_URL"`
	Timeout time.Duration `yaml:"timeout"  env:"PORTFOLIO_API_TIMEOUT"`
}

type AuthConfig struct {
	SessionSecret string        `yaml:"session_secret" env:"AUTH_SESSION_SECRET"`
	JWTSecret     string        `yaml:"jwt_secret"     env:"AUTH_JWT_SECRET"`
	TokenTTL      time.Duration `yaml:"token_ttl"`
}

// RedisConfig holds Redis connection settings for content event publishing.
type RedisConfig struct {
	Address  string `yaml:"address"  env:"REDIS_ADDRESS"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"       env:"REDIS_DB"`
	Enabled  bool   `yaml:"enabled"  env:"REDIS_EVENTS_ENABLED"`
}

type UploadsConfig struct {
	MaxWorkers     int           `yaml:"max_workers"      env:"UPLOAD_MAX_WORKERS"`
	MaxSizeBytes   int64         `yaml:"max_size_bytes"   env:"UPLOAD_MAX_SIZE_BYTES"`
	FormSessionTTL time.Duration `yaml:"form_session_ttl"`
}

func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return errors.New("server.host is required")
	}
	if c.Server.Port <= 0 {
		return errors.New("server.port is required and must be positive")
	}
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.Auth.SessionSecret == "" {
		return errors.New("auth.session_secret is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	return nil
}

// Load reads configuration from path and applies defaults, env overrides,
// and validation.
func Load(path string) (*Config, error) {
	cfg, err := loadWithDefaults(path, setDefaults)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = defaultServerTimeout * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = defaultServerTimeout * time.Second
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"http://localhost:3000"}
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = defaultAPITimeout
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = defaultTokenTTL
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = defaultRedisAddress
	}
	if cfg.Uploads.MaxWorkers == 0 {
		cfg.Uploads.MaxWorkers = defaultUploadWorkers
	}
	if cfg.Uploads.MaxSizeBytes == 0 {
		cfg.Uploads.MaxSizeBytes = defaultUploadSizeLimit
	}
	if cfg.Uploads.FormSessionTTL == 0 {
		cfg.Uploads.FormSessionTTL = defaultFormSessionTTL
	}
}
