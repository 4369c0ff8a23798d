// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/tomtom215/moviemate/internal/catalog"
)

// Engine serves content, collaborative and hybrid recommendations from a
// shared catalog and rating matrix. It is safe for concurrent use.
type Engine struct {
	cfg    Config
	matrix Matrix
	logger zerolog.Logger
	cache  *resultCache

	requests atomic.Int64
	errors   atomic.Int64
}

// EngineStats is a counter snapshot for diagnostics and the stats endpoint.
type EngineStats struct {
	Requests     int64 `json:"requests"`
	Errors       int64 `json:"errors"`
	CacheHits    int64 `json:"cache_hits"`
	CacheMisses  int64 `json:"cache_misses"`
	CacheEntries int   `json:"cache_entries"`
}

// NewEngine creates a recommendation engine over the given matrix.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(matrix Matrix, cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return &Engine{
		cfg:    cfg,
		matrix: matrix,
		logger: logger.With().Str("component", "recommend").Logger(),
		cache:  newResultCache(cfg.CacheTTL, cfg.CacheMaxEntries),
	}, nil
}

// SimilarMovies returns up to k movies ranked by genre similarity to the
// seed movie, excluding the seed itself. A seed with no genres yields an
// empty result, not an error; an unknown seed fails with
// catalog.ErrMovieNotFound.
func (e *Engine) SimilarMovies(ctx context.Context, movieID, k int) (*Result, error) {
	e.requests.Add(1)

	k, err := e.clampK(k)
	if err != nil {
		return nil, e.fail(err)
	}

	key := contentKey(movieID, k, e.matrix.CatalogGeneration())
	result, err := e.cache.do(ctx, key, func() (*Result, error) {
		return e.computeSimilar(movieID, k)
	})
	if err != nil {
		return nil, e.fail(err)
	}

	e.logger.Debug().
		Str("kind", string(KindContent)).
		Int("movie_id", movieID).
		Int("k", k).
		Bool("cache_hit", result.CacheHit).
		Int("returned", len(result.Items)).
		Msg("content recommendation served")
	return result, nil
}

// RecommendFor returns up to k movies the user's nearest neighbors liked
// that the user has not rated. Users absent from the matrix or below the
// minimum-ratings threshold fail with ErrInsufficientData.
func (e *Engine) RecommendFor(ctx context.Context, userID, k int) (*Result, error) {
	e.requests.Add(1)

	k, err := e.clampK(k)
	if err != nil {
		return nil, e.fail(err)
	}

	key := collabKey(userID, k, e.matrix.Generation())
	result, err := e.cache.do(ctx, key, func() (*Result, error) {
		return e.computeCollaborative(userID, k)
	})
	if err != nil {
		return nil, e.fail(err)
	}

	e.logger.Debug().
		Str("kind", string(KindCollaborative)).
		Int("user_id", userID).
		Int("k", k).
		Bool("cache_hit", result.CacheHit).
		Int("returned", len(result.Items)).
		Msg("collaborative recommendation served")
	return result, nil
}

// HybridFor blends both engines for a movie seed and a user seed. With a
// single seed, or a weight that zeroes one side out, the query degrades to
// the remaining engine and the result carries that engine's kind. At least
// one seed is required.
func (e *Engine) HybridFor(ctx context.Context, q HybridQuery) (*Result, error) {
	if q.ContentWeight < 0 || q.ContentWeight > 1 {
		e.requests.Add(1)
		return nil, e.fail(fmt.Errorf("%w: content weight must be in [0, 1], got %g", ErrInvalidRequest, q.ContentWeight))
	}
	if q.MovieID == 0 && q.UserID == 0 {
		e.requests.Add(1)
		return nil, e.fail(fmt.Errorf("%w: at least one seed (movie or user) is required", ErrInvalidRequest))
	}

	switch {
	case q.UserID == 0:
		return e.SimilarMovies(ctx, q.MovieID, q.K)
	case q.MovieID == 0:
		return e.RecommendFor(ctx, q.UserID, q.K)
	case q.ContentWeight == 1:
		return e.SimilarMovies(ctx, q.MovieID, q.K)
	case q.ContentWeight == 0:
		return e.RecommendFor(ctx, q.UserID, q.K)
	}

	e.requests.Add(1)
	k, err := e.clampK(q.K)
	if err != nil {
		return nil, e.fail(err)
	}

	key := hybridKey(q.MovieID, q.UserID, k, q.ContentWeight,
		e.matrix.Generation(), e.matrix.CatalogGeneration())
	result, err := e.cache.do(ctx, key, func() (*Result, error) {
		return e.computeHybrid(q.MovieID, q.UserID, k, q.ContentWeight)
	})
	if err != nil {
		return nil, e.fail(err)
	}

	e.logger.Debug().
		Str("kind", string(KindHybrid)).
		Int("movie_id", q.MovieID).
		Int("user_id", q.UserID).
		Int("k", k).
		Float64("content_weight", q.ContentWeight).
		Bool("cache_hit", result.CacheHit).
		Int("returned", len(result.Items)).
		Msg("hybrid recommendation served")
	return result, nil
}

// NeighborsOf returns the n users most similar to the query user, ordered
// by similarity descending. It is computed fresh on every call; neighbor
// lists are diagnostic and cheap relative to full recommendations.
func (e *Engine) NeighborsOf(userID, n int) ([]Neighbor, error) {
	e.requests.Add(1)

	if n <= 0 {
		return nil, e.fail(fmt.Errorf("%w: neighbor count must be positive, got %d", ErrInvalidRequest, n))
	}

	var (
		neighbors []Neighbor
		eligErr   error
	)
	e.matrix.View(func(tx catalog.Txn) {
		if err := e.collabEligible(tx, userID); err != nil {
			eligErr = err
			return
		}
		neighbors = e.neighborsIn(tx, userID, n)
	})
	if eligErr != nil {
		return nil, e.fail(eligErr)
	}
	return neighbors, nil
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() EngineStats {
	hits, misses, entries := e.cache.snapshot()
	return EngineStats{
		Requests:     e.requests.Load(),
		Errors:       e.errors.Load(),
		CacheHits:    hits,
		CacheMisses:  misses,
		CacheEntries: entries,
	}
}

// clampK validates the requested result size and applies the configured
// ceiling. Clamping happens before cache keys are built, so an oversized
// request shares the entry of the clamped one.
func (e *Engine) clampK(k int) (int, error) {
	if k <= 0 {
		return 0, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidRequest, k)
	}
	if k > e.cfg.MaxK {
		k = e.cfg.MaxK
	}
	return k, nil
}

// fail counts an error and passes it through.
func (e *Engine) fail(err error) error {
	e.errors.Add(1)
	return err
}

// sortScored orders by score descending, ascending movie ID on ties, the
// deterministic order every result guarantees.
func sortScored(items []Scored) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].MovieID < items[j].MovieID
	})
}

// rankScores converts a candidate score map into a ranked, truncated list.
func rankScores(scores map[int]float64, k int) []Scored {
	items := make([]Scored, 0, len(scores))
	for id, score := range scores {
		items = append(items, Scored{MovieID: id, Score: score})
	}
	sortScored(items)
	if len(items) > k {
		items = items[:k]
	}
	return items
}
