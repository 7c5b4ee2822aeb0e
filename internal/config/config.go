// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

// Package config loads and validates application configuration.
//
// Configuration is layered: struct defaults, then an optional YAML
// file, then DDALKKAK_-prefixed environment variables, each overriding
// the previous layer.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Providers ProvidersConfig `koanf:"providers"`
	Store     StoreConfig     `koanf:"store"`
	Templates TemplatesConfig `koanf:"templates"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// RateLimitReqs/RateLimitWindow bound requests per client IP.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// ProvidersConfig configures the generation provider chain.
type ProvidersConfig struct {
	OpenAI    ProviderConfig `koanf:"openai"`
	Anthropic ProviderConfig `koanf:"anthropic"`
}

// ProviderConfig configures one generative backend adapter.
type ProviderConfig struct {
	Enabled bool          `koanf:"enabled"`
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`

	// RatePerMinute bounds outbound calls to the backend; 0 disables
	// client-side rate limiting.
	RatePerMinute int `koanf:"rate_per_minute"`
}

// StoreConfig configures the BadgerDB-backed persistence.
type StoreConfig struct {
	// Path is the BadgerDB directory. Empty selects an in-memory
	// store, which is only suitable for tests and local development.
	Path string `koanf:"path"`
}

// TemplatesConfig configures the fallback template table.
type TemplatesConfig struct {
	// Path optionally overrides the embedded template table with an
	// external JSON file.
	Path string `koanf:"path"`
}

// LoggingConfig configures the logging package.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Providers: ProvidersConfig{
			OpenAI: ProviderConfig{
				Enabled:       true,
				BaseURL:       "https://api.openai.com/v1",
				Model:         "gpt-4-turbo-preview",
				Timeout:       10 * time.Second,
				RatePerMinute: 60,
			},
			Anthropic: ProviderConfig{
				Enabled:       true,
				BaseURL:       "https://api.anthropic.com/v1",
				Model:         "claude-3-5-sonnet-20241022",
				Timeout:       10 * time.Second,
				RatePerMinute: 60,
			},
		},
		Store: StoreConfig{
			Path: "/data/ddalkkak",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the loaded configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive")
	}

	for name, p := range map[string]ProviderConfig{
		"openai":    c.Providers.OpenAI,
		"anthropic": c.Providers.Anthropic,
	} {
		if !p.Enabled {
			continue
		}
		if p.BaseURL == "" {
			return fmt.Errorf("providers.%s.base_url is required when enabled", name)
		}
		if p.Model == "" {
			return fmt.Errorf("providers.%s.model is required when enabled", name)
		}
		if p.Timeout <= 0 {
			return fmt.Errorf("providers.%s.timeout must be positive", name)
		}
	}

	return nil
}
