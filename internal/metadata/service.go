// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package metadata

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moviemate/internal/catalog"
	"github.com/tomtom215/moviemate/internal/config"
	"github.com/tomtom215/moviemate/internal/logging"
	"github.com/tomtom215/moviemate/internal/metrics"
)

// Service is the enrichment facade used by the API layer. Lookups are
// best-effort: any provider failure degrades to the zero Enrichment so
// the catalog and recommendation paths never depend on the provider
// being reachable.
type Service struct {
	client  lookupClient
	cache   *Cache
	logger  zerolog.Logger
	enabled bool
}

// New builds the enrichment service. Without an API key the service is
// disabled: Enrich answers with zero values and never touches the
// network or opens a cache.
func New(cfg config.MetadataConfig) (*Service, error) {
	logger := logging.WithComponent("metadata")

	if cfg.APIKey == "" {
		logger.Info().Msg("Metadata enrichment disabled (no API key configured)")
		return &Service{logger: logger}, nil
	}

	cache, err := OpenCache(cfg.CacheDir, cfg.CacheTTL)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("base_url", cfg.BaseURL).
		Bool("disk_cache", cfg.CacheDir != "").
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Metadata enrichment enabled")

	return &Service{
		client:  NewBreakerClient(NewClient(cfg)),
		cache:   cache,
		logger:  logger,
		enabled: true,
	}, nil
}

// Enabled reports whether provider lookups are configured.
func (s *Service) Enabled() bool {
	return s.enabled
}

// Enrich returns provider metadata for a movie. The zero Enrichment is
// returned when enrichment is disabled, the provider has no record, or
// the lookup fails; callers can serve it directly without error
// handling.
func (s *Service) Enrich(ctx context.Context, m catalog.Movie) Enrichment {
	if !s.enabled {
		return Enrichment{}
	}

	if cached, ok := s.cache.Get(m.ID); ok {
		metrics.RecordMetadataLookup(true)
		return *cached
	}
	metrics.RecordMetadataLookup(false)

	e, err := s.client.Lookup(ctx, m.Title, m.Year)
	if err != nil {
		metrics.MetadataDegraded.Inc()
		if !errors.Is(err, ErrNotFound) {
			s.logger.Warn().Err(err).Int("movie_id", m.ID).Str("title", m.Title).Msg("Metadata lookup failed, serving unenriched")
		}
		return Enrichment{}
	}

	if err := s.cache.Put(m.ID, e); err != nil {
		s.logger.Debug().Err(err).Int("movie_id", m.ID).Msg("Failed to cache enrichment")
	}

	return *e
}

// CacheLen reports how many enrichments are cached. Used by stats and
// health reporting; returns 0 when the service is disabled.
func (s *Service) CacheLen() int {
	if s.cache == nil {
		return 0
	}
	n, err := s.cache.Len()
	if err != nil {
		return 0
	}
	return n
}

// RunCacheGC runs one cache garbage collection cycle. The metadata
// janitor calls this periodically; it is a no-op when disabled.
func (s *Service) RunCacheGC() error {
	if s.cache == nil {
		return nil
	}
	return s.cache.RunGC()
}

// Close releases the cache. Safe to call on a disabled service.
func (s *Service) Close() error {
	if s.cache != nil {
		return s.cache.Close()
	}
	return nil
}
