// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

// Package config provides centralized configuration management for MovieMate.
//
// Configuration is loaded in three layers with clear precedence:
//  1. Defaults: Built-in sensible defaults for every setting
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting
//
// The Config struct is immutable after Load() and safe for concurrent
// read access from multiple goroutines.
package config

import "time"

// Config holds all application configuration loaded from defaults, an
// optional YAML config file, and environment variables.
//
// Configuration Categories:
//
//  1. Data:
//     - Data: CSV catalog location (movies and ratings files)
//
//  2. Engine:
//     - Engine: Recommendation engine tunables (neighborhood size,
//       similarity metric, hybrid blend weight)
//     - Cache: Recommendation cache TTL and capacity
//
//  3. Surfaces:
//     - Server: HTTP server configuration (port, host, timeout)
//     - API: Pagination limits
//     - Metadata: Optional external metadata enrichment provider
//
//  4. Observability:
//     - Logging: Log levels and output formats
//
// Example - Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load config")
//	}
//	// cfg.Server.Port, cfg.Engine.NeighborK, etc. are now populated
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Data     DataConfig     `koanf:"data"`
	Engine   EngineConfig   `koanf:"engine"`
	Cache    CacheConfig    `koanf:"cache"`
	Metadata MetadataConfig `koanf:"metadata"` // Optional: external metadata enrichment
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - SERVER_HOST: Bind address (default: 0.0.0.0)
//   - SERVER_PORT: Listen port (default: 8454)
//   - SERVER_TIMEOUT: Read/write timeout (default: 30s)
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DataConfig holds the catalog data source settings. The movies file is
// required at startup; missing or unreadable files abort the process.
//
// Environment Variables:
//   - DATA_DIR: Directory containing the CSV files (default: ./data)
//   - MOVIES_FILE: Movies CSV filename (default: movies.csv)
//   - RATINGS_FILE: Ratings CSV filename (default: ratings.csv)
type DataConfig struct {
	Dir         string `koanf:"dir"`
	MoviesFile  string `koanf:"movies_file"`
	RatingsFile string `koanf:"ratings_file"`
}

// EngineConfig holds recommendation engine tunables.
//
// Environment Variables:
//   - ENGINE_NEIGHBOR_K: Neighborhood size for collaborative filtering (default: 10)
//   - ENGINE_MIN_RATINGS: Minimum ratings before a user gets collaborative
//     recommendations (default: 1)
//   - ENGINE_DEFAULT_K: Result count when the request does not specify one (default: 10)
//   - ENGINE_MAX_K: Upper bound on requested result count (default: 50)
//   - ENGINE_SIMILARITY: User similarity metric, cosine or pearson (default: cosine)
//   - ENGINE_CONTENT_WEIGHT: Hybrid blend weight for the content component,
//     in [0,1] (default: 0.6)
type EngineConfig struct {
	NeighborK     int     `koanf:"neighbor_k"`
	MinRatings    int     `koanf:"min_ratings"`
	DefaultK      int     `koanf:"default_k"`
	MaxK          int     `koanf:"max_k"`
	Similarity    string  `koanf:"similarity"`
	ContentWeight float64 `koanf:"content_weight"`
}

// CacheConfig holds recommendation cache settings.
//
// Environment Variables:
//   - CACHE_TTL: Entry lifetime (default: 5m)
//   - CACHE_MAX_ENTRIES: Capacity before least-recently-used eviction (default: 10000)
type CacheConfig struct {
	TTL        time.Duration `koanf:"ttl"`
	MaxEntries int           `koanf:"max_entries"`
}

// MetadataConfig holds settings for the external metadata enrichment
// provider (posters, plots, cast). Enrichment is disabled when APIKey is
// empty; the catalog and engine operate normally without it.
//
// Environment Variables:
//   - METADATA_API_KEY: Provider API key (default: empty, enrichment disabled)
//   - METADATA_BASE_URL: Provider endpoint (default: https://www.omdbapi.com/)
//   - METADATA_CACHE_DIR: On-disk cache directory (default: empty, in-memory cache)
//   - METADATA_CACHE_TTL: Cached response lifetime (default: 168h)
//   - METADATA_TIMEOUT: Per-request timeout (default: 10s)
type MetadataConfig struct {
	APIKey   string        `koanf:"api_key"`
	BaseURL  string        `koanf:"base_url"`
	CacheDir string        `koanf:"cache_dir"`
	CacheTTL time.Duration `koanf:"cache_ttl"`
	Timeout  time.Duration `koanf:"timeout"`
}

// APIConfig holds API response shaping settings.
//
// Environment Variables:
//   - API_DEFAULT_PAGE_SIZE: Page size when unspecified (default: 20)
//   - API_MAX_PAGE_SIZE: Maximum page size (default: 100)
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// LoggingConfig holds logging settings.
//
// Environment Variables:
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: Include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file, and
// environment variables, then validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
