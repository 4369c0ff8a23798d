// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package recommend

import (
	"github.com/tomtom215/moviemate/internal/catalog"
)

// Kind identifies which query path produced a result. It is part of the
// cache key, so each path's entries are disjoint.
type Kind string

// Query paths.
const (
	KindContent       Kind = "content"
	KindCollaborative Kind = "collaborative"
	KindHybrid        Kind = "hybrid"
)

// Matrix provides consistent read access to the catalog and rating matrix.
// *catalog.Store satisfies it; the indirection leaves room to swap in an
// approximate-neighbor index behind the same contract.
type Matrix interface {
	// View runs fn under a read lock spanning the whole query, so a
	// multi-step computation never observes a half-applied rating write.
	View(fn func(tx catalog.Txn))

	// Movie returns the catalog entry for id.
	Movie(id int) (catalog.Movie, error)

	// Generation is the rating matrix version, bumped on every rating
	// mutation.
	Generation() uint64

	// CatalogGeneration is the movie set version, unaffected by rating
	// writes.
	CatalogGeneration() uint64
}

// Scored is one ranked entry of a recommendation result.
type Scored struct {
	// MovieID identifies the recommended movie.
	MovieID int `json:"movie_id"`

	// Score is the ranking score. Content scores are raw cosine values
	// in (0, 1]; collaborative scores are rating-scale aggregates;
	// hybrid scores are normalized blends in [0, 1].
	Score float64 `json:"score"`

	// Parts breaks a hybrid score into its normalized components,
	// keyed by engine kind. Nil for single-engine results.
	Parts map[string]float64 `json:"parts,omitempty"`
}

// Neighbor is a user ranked by similarity to the query user.
type Neighbor struct {
	UserID     int     `json:"user_id"`
	Similarity float64 `json:"similarity"`
}

// Result is an ordered recommendation list. Results handed out by the
// engine may be shared between concurrent callers and must be treated as
// read-only.
type Result struct {
	// Kind is the query path that produced the ranking.
	Kind Kind `json:"kind"`

	// Items is sorted by score descending, ties broken by ascending
	// movie ID. Empty is a valid answer for a well-formed query.
	Items []Scored `json:"items"`

	// Generation is the rating matrix version the ranking was computed
	// against.
	Generation uint64 `json:"generation"`

	// CacheHit reports whether this result was served from the memo
	// cache rather than computed.
	CacheHit bool `json:"cache_hit"`
}

// HybridQuery parametrizes a blended recommendation request. Weighting and
// size are explicit per call because cache keys depend on them.
type HybridQuery struct {
	// MovieID seeds the content side. Zero means no movie seed.
	MovieID int

	// UserID seeds the collaborative side. Zero means no user seed.
	UserID int

	// K is the maximum result size. Must be positive; values above the
	// configured MaxK are clamped.
	K int

	// ContentWeight is the content share of the blend in [0, 1]:
	// 1 ranks purely by content, 0 purely by collaborative signal.
	ContentWeight float64
}
