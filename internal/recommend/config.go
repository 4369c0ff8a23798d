// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package recommend

import (
	"fmt"
	"time"
)

// Similarity metric names accepted by Config.Similarity.
const (
	SimilarityCosine  = "cosine"
	SimilarityPearson = "pearson"
)

// Config contains the tuning parameters of the recommendation engine.
type Config struct {
	// NeighborK is the number of most-similar users considered when
	// aggregating collaborative scores. Independent of the result size.
	NeighborK int

	// MinRatings is the minimum number of ratings a user needs before
	// collaborative queries succeed. Users below it fail with
	// ErrInsufficientData.
	MinRatings int

	// MaxK caps the requested result size. Larger requests are clamped,
	// not rejected.
	MaxK int

	// Similarity selects the user-similarity metric: "cosine" computes
	// the dot product over co-rated movies against full-vector norms,
	// "pearson" correlates rating deviations over the co-rated subset.
	Similarity string

	// CacheTTL bounds how long a memoized result may be served.
	CacheTTL time.Duration

	// CacheMaxEntries is the soft capacity of the result cache. Reaching
	// it triggers eviction of expired entries.
	CacheMaxEntries int
}

// DefaultConfig returns production defaults sized for a MovieLens-scale
// dataset.
func DefaultConfig() Config {
	return Config{
		NeighborK:       10,
		MinRatings:      1,
		MaxK:            50,
		Similarity:      SimilarityCosine,
		CacheTTL:        5 * time.Minute,
		CacheMaxEntries: 10000,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.NeighborK <= 0 {
		return fmt.Errorf("neighbor k must be positive, got %d", c.NeighborK)
	}
	if c.MinRatings < 1 {
		return fmt.Errorf("min ratings must be at least 1, got %d", c.MinRatings)
	}
	if c.MaxK <= 0 {
		return fmt.Errorf("max k must be positive, got %d", c.MaxK)
	}
	if c.Similarity != SimilarityCosine && c.Similarity != SimilarityPearson {
		return fmt.Errorf("similarity must be %q or %q, got %q", SimilarityCosine, SimilarityPearson, c.Similarity)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache ttl must be positive, got %s", c.CacheTTL)
	}
	if c.CacheMaxEntries <= 0 {
		return fmt.Errorf("cache max entries must be positive, got %d", c.CacheMaxEntries)
	}
	return nil
}
