// Package config loads server configuration from an optional YAML file
// with environment variable overrides. Every field has a working
// default so a bare `opsdesk` invocation starts a local instance.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all opsdesk configuration.
type Config struct {
	// Env is "production" or anything else for development.
	Env string `yaml:"env"`

	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// DBPath is the SQLite database file path.
	DBPath string `yaml:"db_path"`

	// CSRFKey is the 32-byte key for CSRF token signing. A development
	// key is generated when empty outside production.
	CSRFKey string `yaml:"csrf_key"`

	Email EmailConfig `yaml:"email"`
	AI    AIConfig    `yaml:"ai"`
}

// EmailConfig configures the outbound email provider.
type EmailConfig struct {
	ResendKey string `yaml:"resend_key"`
	From      string `yaml:"from"`
}

// AIConfig configures the drafting collaborator.
type AIConfig struct {
	GeminiKey string `yaml:"gemini_key"`
	Model     string `yaml:"model"`
}

// DefaultConfig returns the development defaults.
func DefaultConfig() *Config {
	return &Config{
		Env:    "development",
		Addr:   ":8484",
		DBPath: "opsdesk.db",
		Email: EmailConfig{
			From: "OpsDesk <noreply@opsdesk.example>",
		},
	}
}

// Load reads configuration from path, falling back to defaults when the
// file does not exist. Environment variables override file values.
// PRE: path may name a missing file
// POST: Returns a fully populated Config or an error for malformed YAML
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("OPSDESK_ENV"); v != "" {
		c.Env = v
	}
	if v := os.Getenv("OPSDESK_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("OPSDESK_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("OPSDESK_CSRF_KEY"); v != "" {
		c.CSRFKey = v
	}
	if v := os.Getenv("OPSDESK_RESEND_KEY"); v != "" {
		c.Email.ResendKey = v
	}
	if v := os.Getenv("OPSDESK_EMAIL_FROM"); v != "" {
		c.Email.From = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.AI.GeminiKey = v
	}
	if v := os.Getenv("OPSDESK_AI_MODEL"); v != "" {
		c.AI.Model = v
	}
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
