// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"time"

	"github.com/tomtom215/moviemate/internal/arena"
	"github.com/tomtom215/moviemate/internal/catalog"
	"github.com/tomtom215/moviemate/internal/config"
	"github.com/tomtom215/moviemate/internal/metadata"
	"github.com/tomtom215/moviemate/internal/recommend"
)

// Handler carries the dependencies shared by all endpoint handlers.
//
// Handler methods are split across files by route group:
//   - handlers_health.go: health probe
//   - handlers_movies.go: catalog browsing, search, streaming, trivia
//   - handlers_ratings.go: rating writes and per-user reads
//   - handlers_users.go: user profiles
//   - handlers_recommend.go: the three recommendation query paths
//   - handlers_stats.go: catalog and engine counters
//   - handlers_onboarding.go: genre questionnaire flow
//   - handlers_discover.go: mood / era decision flow
//   - handlers_arena.go: movie battles
type Handler struct {
	store    *catalog.Store
	engine   *recommend.Engine
	metadata *metadata.Service
	battles  *arena.Arena
	cfg      *config.Config

	version   string
	startTime time.Time
}

// NewHandler creates the API handler. All dependencies are required; the
// metadata service may be in its disabled state, in which case enrichment
// fields are simply omitted from responses.
func NewHandler(store *catalog.Store, engine *recommend.Engine, meta *metadata.Service, battles *arena.Arena, cfg *config.Config, version string) *Handler {
	return &Handler{
		store:     store,
		engine:    engine,
		metadata:  meta,
		battles:   battles,
		cfg:       cfg,
		version:   version,
		startTime: time.Now(),
	}
}

// defaultK is the result size used when a recommendation request omits k.
// The engine clamps oversized values; zero and negative ones it rejects.
func (h *Handler) defaultK() int {
	if h.cfg.Engine.DefaultK > 0 {
		return h.cfg.Engine.DefaultK
	}
	return 10
}

// defaultContentWeight is the hybrid blend used when the request omits
// content_weight.
func (h *Handler) defaultContentWeight() float64 {
	if w := h.cfg.Engine.ContentWeight; w > 0 && w <= 1 {
		return w
	}
	return 0.6
}

// pageSizeConfig returns the configured default and maximum page sizes.
func (h *Handler) pageSizeConfig() (def, max int) {
	def, max = h.cfg.API.DefaultPageSize, h.cfg.API.MaxPageSize
	if def <= 0 {
		def = 20
	}
	if max <= 0 {
		max = 100
	}
	return def, max
}

// clampLimit bounds a requested page size to [1, max].
func (h *Handler) clampLimit(limit int) int {
	_, max := h.pageSizeConfig()
	if limit < 1 {
		return 1
	}
	if limit > max {
		return max
	}
	return limit
}
