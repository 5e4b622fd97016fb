package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
debug: true
server:
  host: "0.0.0.0"
  port: 8095
api:
  base_url: "https://backend.example.com/api"
auth:
  session_secret: "session-secret"
  jwt_secret: "jwt-secret"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if !cfg.Debug {
		t.Error("Load() cfg.Debug = false, want true")
	}
	if cfg.Server.Port != 8095 {
		t.Errorf("Load() cfg.Server.Port = %v, want 8095", cfg.Server.Port)
	}
	if cfg.API.BaseURL != "https://backend.example.com/api" {
		t.Errorf("Load() cfg.API.BaseURL = %v, want backend URL", cfg.API.BaseURL)
	}
}

func TestLoad_Defaults(t *testing.T) {
	configPath := writeConfig(t, `
api:
  base_url: "https://backend.example.com/api"
auth:
  session_secret: "session-secret"
  jwt_secret: "jwt-secret"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.Server.Port != defaultServerPort {
		t.Errorf("Load() cfg.Server.Port = %v, want %v", cfg.Server.Port, defaultServerPort)
	}
	if cfg.Server.ReadTimeout != defaultServerTimeout*time.Second {
		t.Errorf("Load() cfg.Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, defaultServerTimeout*time.Second)
	}
	if cfg.API.Timeout != defaultAPITimeout {
		t.Errorf("Load() cfg.API.Timeout = %v, want %v", cfg.API.Timeout, defaultAPITimeout)
	}
	if cfg.Uploads.MaxWorkers <= 0 {
		t.Errorf("Load() cfg.Uploads.MaxWorkers = %v, want positive", cfg.Uploads.MaxWorkers)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PORTFOLIO_API_URL", "https://env.example.com/api")
	t.Setenv("SERVER_PORT", "9001")

	configPath := writeConfig(t, `
api:
  base_url: "https://file.example.com/api"
auth:
  session_secret: "session-secret"
  jwt_secret: "jwt-secret"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	if cfg.API.BaseURL != "https://env.example.com/api" {
		t.Errorf("env override not applied: cfg.API.BaseURL = %v", cfg.API.BaseURL)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("env override not applied: cfg.Server.Port = %v", cfg.Server.Port)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing api base url",
			content: `
auth:
  session_secret: "session-secret"
  jwt_secret: "jwt-secret"
`,
		},
		{
			name: "missing session secret",
			content: `
api:
  base_url: "https://backend.example.com/api"
auth:
  jwt_secret: "jwt-secret"
`,
		},
		{
			name: "missing jwt secret",
			content: `
api:
  base_url: "https://backend.example.com/api"
auth:
  session_secret: "session-secret"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := writeConfig(t, tt.content)
			if _, err := Load(configPath); err == nil {
				t.Error("Load() error = nil, want validation error")
			}
		})
	}
}

func TestLoad_MissingFileUsesEnv(t *testing.T) {
	t.Setenv("PORTFOLIO_API_URL", "https://env.example.com/api")
	t.Setenv("AUTH_SESSION_SECRET", "session-secret")
	t.Setenv("AUTH_JWT_SECRET", "jwt-secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}
	if cfg.API.BaseURL != "https://env.example.com/api" {
		t.Errorf("cfg.API.BaseURL = %v, want env value", cfg.API.BaseURL)
	}
}
