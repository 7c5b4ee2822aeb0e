// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Providers.OpenAI.Timeout)
	assert.Equal(t, 10*time.Second, cfg.Providers.Anthropic.Timeout)
	assert.True(t, cfg.Providers.OpenAI.Enabled)
	assert.Equal(t, "gpt-4-turbo-preview", cfg.Providers.OpenAI.Model)
	assert.Equal(t, "claude-3-5-sonnet-20241022", cfg.Providers.Anthropic.Model)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DDALKKAK_SERVER_PORT", "9090")
	t.Setenv("DDALKKAK_PROVIDERS_OPENAI_API_KEY", "sk-test")
	t.Setenv("DDALKKAK_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "sk-test", cfg.Providers.OpenAI.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: 4000\nproviders:\n  openai:\n    model: gpt-4o\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "gpt-4o", cfg.Providers.OpenAI.Model)
	// Untouched defaults survive layering.
	assert.Equal(t, "https://api.openai.com/v1", cfg.Providers.OpenAI.BaseURL)
}

func TestValidateRejectsBadPort(t *testing.T) {
	cfg := defaultConfig()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsEnabledProviderWithoutModel(t *testing.T) {
	cfg := defaultConfig()
	cfg.Providers.Anthropic.Model = ""
	assert.Error(t, cfg.Validate())
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"DDALKKAK_SERVER_PORT", "server.port"},
		{"DDALKKAK_SERVER_RATE_LIMIT_REQS", "server.rate_limit_reqs"},
		{"DDALKKAK_PROVIDERS_OPENAI_API_KEY", "providers.openai.api_key"},
		{"DDALKKAK_PROVIDERS_ANTHROPIC_BASE_URL", "providers.anthropic.base_url"},
		{"DDALKKAK_STORE_PATH", "store.path"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, envTransform(tt.in), tt.in)
	}
}
