// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order
// of priority. The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moviemate/config.yaml",
	"/etc/moviemate/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8454,
			Timeout: 30 * time.Second,
		},
		Data: DataConfig{
			Dir:         "./data",
			MoviesFile:  "movies.csv",
			RatingsFile: "ratings.csv",
		},
		Engine: EngineConfig{
			NeighborK:     10,
			MinRatings:    1,
			DefaultK:      10,
			MaxK:          50,
			Similarity:    "cosine",
			ContentWeight: 0.6,
		},
		Cache: CacheConfig{
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
		Metadata: MetadataConfig{
			APIKey:   "", // Enrichment disabled unless a key is provided
			BaseURL:  "https://www.omdbapi.com/",
			CacheDir: "", // Empty means in-memory cache
			CacheTTL: 168 * time.Hour,
			Timeout:  10 * time.Second,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// Precedence is ENV > File > Defaults.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// ENGINE_NEIGHBOR_K -> engine.neighbor_k
	// METADATA_API_KEY -> metadata.api_key
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables are skipped so that unrelated environment variables
// cannot pollute the configuration.
//
// Examples:
//   - SERVER_PORT -> server.port
//   - ENGINE_CONTENT_WEIGHT -> engine.content_weight
//   - METADATA_API_KEY -> metadata.api_key
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		// Server mappings
		"server_host":    "server.host",
		"server_port":    "server.port",
		"server_timeout": "server.timeout",

		// Data mappings
		"data_dir":     "data.dir",
		"movies_file":  "data.movies_file",
		"ratings_file": "data.ratings_file",

		// Engine mappings
		"engine_neighbor_k":     "engine.neighbor_k",
		"engine_min_ratings":    "engine.min_ratings",
		"engine_default_k":      "engine.default_k",
		"engine_max_k":          "engine.max_k",
		"engine_similarity":     "engine.similarity",
		"engine_content_weight": "engine.content_weight",

		// Cache mappings
		"cache_ttl":         "cache.ttl",
		"cache_max_entries": "cache.max_entries",

		// Metadata mappings
		"metadata_api_key":   "metadata.api_key",
		"metadata_base_url":  "metadata.base_url",
		"metadata_cache_dir": "metadata.cache_dir",
		"metadata_cache_ttl": "metadata.cache_ttl",
		"metadata_timeout":   "metadata.timeout",

		// API mappings
		"api_default_page_size": "api.default_page_size",
		"api_max_page_size":     "api.max_page_size",

		// Logging mappings
		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	return ""
}
