// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// BattleSweeper drops expired battles and reports how many were removed.
// Satisfied by *arena.Arena.
type BattleSweeper interface {
	CleanupExpired() int
}

// CacheCollector runs one garbage collection cycle on the enrichment
// cache. Satisfied by *metadata.Service, where it is a no-op when the
// collaborator is disabled.
type CacheCollector interface {
	RunCacheGC() error
}

// JanitorConfig holds configuration for the janitor service.
type JanitorConfig struct {
	// Interval is how often maintenance runs. Default: 5m
	Interval time.Duration
}

// JanitorService runs periodic maintenance: expired battles are swept
// from the arena and the enrichment cache gets a GC cycle. Neither task
// is latency sensitive, so both share one ticker.
type JanitorService struct {
	battles BattleSweeper
	cache   CacheCollector
	config  JanitorConfig
	logger  zerolog.Logger
	name    string
}

// NewJanitorService creates a janitor service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewJanitorService(battles BattleSweeper, cache CacheCollector, cfg JanitorConfig, logger zerolog.Logger) *JanitorService {
	return &JanitorService{
		battles: battles,
		cache:   cache,
		config:  cfg,
		logger:  logger.With().Str("service", "janitor").Logger(),
		name:    "janitor",
	}
}

// Serve implements the suture.Service interface. It runs the maintenance
// loop until the context is canceled.
func (s *JanitorService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.config.Interval = 5 * time.Minute
	}

	s.logger.Info().
		Dur("interval", s.config.Interval).
		Msg("janitor service starting")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("janitor service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.sweep()
		}
	}
}

// sweep performs one maintenance cycle. Failures are logged rather than
// returned so a bad cycle never triggers a supervisor restart.
func (s *JanitorService) sweep() {
	start := time.Now()

	expired := s.battles.CleanupExpired()
	if expired > 0 {
		s.logger.Debug().Int("expired", expired).Msg("swept expired battles")
	}

	if err := s.cache.RunCacheGC(); err != nil {
		s.logger.Warn().Err(err).Msg("enrichment cache GC failed")
	}

	s.logger.Debug().
		Dur("duration", time.Since(start)).
		Msg("maintenance cycle complete")
}

// String returns the service name for logging.
func (s *JanitorService) String() string {
	return s.name
}
