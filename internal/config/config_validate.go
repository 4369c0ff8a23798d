// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateData(); err != nil {
		return err
	}

	if err := c.validateEngine(); err != nil {
		return err
	}

	if err := c.validateCache(); err != nil {
		return err
	}

	if err := c.validateMetadata(); err != nil {
		return err
	}

	if err := c.validateAPI(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}
	if c.Data.MoviesFile == "" {
		return fmt.Errorf("MOVIES_FILE must not be empty")
	}
	if c.Data.RatingsFile == "" {
		return fmt.Errorf("RATINGS_FILE must not be empty")
	}
	return nil
}

func (c *Config) validateEngine() error {
	if c.Engine.NeighborK < 1 {
		return fmt.Errorf("ENGINE_NEIGHBOR_K must be at least 1, got %d", c.Engine.NeighborK)
	}
	if c.Engine.MinRatings < 1 {
		return fmt.Errorf("ENGINE_MIN_RATINGS must be at least 1, got %d", c.Engine.MinRatings)
	}
	if c.Engine.DefaultK < 1 {
		return fmt.Errorf("ENGINE_DEFAULT_K must be at least 1, got %d", c.Engine.DefaultK)
	}
	if c.Engine.MaxK < c.Engine.DefaultK {
		return fmt.Errorf("ENGINE_MAX_K must be >= ENGINE_DEFAULT_K (%d), got %d",
			c.Engine.DefaultK, c.Engine.MaxK)
	}

	similarity := strings.ToLower(c.Engine.Similarity)
	if similarity != "cosine" && similarity != "pearson" {
		return fmt.Errorf("ENGINE_SIMILARITY must be cosine or pearson, got %q", c.Engine.Similarity)
	}

	if c.Engine.ContentWeight < 0 || c.Engine.ContentWeight > 1 {
		return fmt.Errorf("ENGINE_CONTENT_WEIGHT must be between 0 and 1, got %g", c.Engine.ContentWeight)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.Cache.TTL)
	}
	if c.Cache.MaxEntries < 1 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be at least 1, got %d", c.Cache.MaxEntries)
	}
	return nil
}

// validateMetadata validates metadata provider settings. Enrichment is
// optional; settings are only checked when an API key is configured.
func (c *Config) validateMetadata() error {
	if c.Metadata.APIKey == "" {
		return nil // Enrichment disabled - no validation needed
	}

	if err := validateHTTPURL(c.Metadata.BaseURL, "METADATA_BASE_URL"); err != nil {
		return err
	}
	if c.Metadata.CacheTTL <= 0 {
		return fmt.Errorf("METADATA_CACHE_TTL must be positive, got %s", c.Metadata.CacheTTL)
	}
	if c.Metadata.Timeout <= 0 {
		return fmt.Errorf("METADATA_TIMEOUT must be positive, got %s", c.Metadata.Timeout)
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE must be >= API_DEFAULT_PAGE_SIZE (%d), got %d",
			c.API.DefaultPageSize, c.API.MaxPageSize)
	}
	return nil
}

func (c *Config) validateLogging() error {
	validLevels := map[string]bool{
		"trace": true, "debug": true, "info": true,
		"warn": true, "warning": true, "error": true,
		"fatal": true, "panic": true, "disabled": true,
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal, panic, got %q",
			c.Logging.Level)
	}

	format := strings.ToLower(c.Logging.Format)
	if format != "json" && format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

// validateHTTPURL validates that a URL is properly formatted for HTTP/HTTPS services.
// Validates: scheme (http/https), host present, no query params.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}
