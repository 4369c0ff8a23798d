// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

// Package recommend implements the hybrid movie recommendation engine.
//
// # Architecture
//
// Three query paths share one in-memory catalog and rating matrix:
//
//   - Content: cosine similarity between one-hot genre vectors, answering
//     "movies like X" without any behavioral data.
//   - Collaborative: user-based filtering over the sparse rating matrix,
//     answering "movies liked by users like U."
//   - Hybrid: per-request min-max normalization of both engines' scores,
//     blended as w*content + (1-w)*collaborative.
//
// # Determinism
//
// Same inputs produce identical outputs. Every ranking is sorted by score
// descending with ties broken by ascending movie ID, so results are
// reproducible across runs and safe to cache.
//
// # Caching
//
// Full ranked results are memoized keyed by engine kind, seeds, k, blend
// weight, and the matrix generation. Rating writes bump the generation,
// orphaning stale entries instead of flushing; content entries key on the
// catalog generation and survive rating churn. A single-flight group
// guarantees at most one computation per key regardless of concurrent
// demand.
//
// # Usage
//
//	engine, err := recommend.NewEngine(store, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	result, err := engine.HybridFor(ctx, recommend.HybridQuery{
//	    MovieID:       1,
//	    UserID:        42,
//	    K:             10,
//	    ContentWeight: 0.6,
//	})
//
// # Thread Safety
//
// The engine is safe for concurrent use. Queries run under the store's
// shared read lock; the store's single writer path is the only mutation.
package recommend
