// Ddalkkak - Date Itinerary Recommendation
// Copyright 2026 zzangoobrother
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/zzangoobrother/ddalkkak-date

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched
// in order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/ddalkkak/config.yaml",
	"/etc/ddalkkak/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "DDALKKAK_CONFIG"

// envPrefix is stripped from environment variables before mapping them
// to koanf paths: DDALKKAK_SERVER_PORT -> server.port.
const envPrefix = "DDALKKAK_"

// Load builds the configuration from defaults, an optional YAML file
// and environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: struct defaults.
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// Layer 2: optional config file.
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables (highest priority).
	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, honoring
// the DDALKKAK_CONFIG override.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// configSections are the known config path prefixes, longest first.
// Underscores inside a section become dots; the remainder stays
// snake_case: DDALKKAK_PROVIDERS_OPENAI_API_KEY ->
// providers.openai.api_key, DDALKKAK_SERVER_RATE_LIMIT_REQS ->
// server.rate_limit_reqs.
var configSections = []string{
	"providers_openai",
	"providers_anthropic",
	"server",
	"store",
	"templates",
	"logging",
}

// envTransform maps an environment variable name to a koanf path.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, sect := range configSections {
		if strings.HasPrefix(s, sect+"_") {
			key := strings.TrimPrefix(s, sect+"_")
			return strings.ReplaceAll(sect, "_", ".") + "." + key
		}
	}
	return strings.Replace(s, "_", ".", 1)
}
