// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

// Package metadata enriches catalog movies with data from an external
// OMDb-style provider: poster URLs, plots, directors, cast, and IMDb
// ratings. The provider is an optional collaborator; the recommendation
// engine and catalog work identically whether or not it is configured.
//
// # Degradation Policy
//
// Every lookup is best-effort. Enrich never returns an error to its
// caller: provider timeouts, rate limits, decode failures, and an open
// circuit breaker all degrade to the zero Enrichment plus a log line and
// a metrics increment. When no API key is configured the service is
// disabled outright and answers with zero values without touching the
// network.
//
// # Resilience
//
// Outbound calls pass through three layers:
//
//  1. A token-bucket rate limiter (1 request/second, burst 5) keeps the
//     client inside free-tier etiquette.
//  2. HTTP 429 responses are retried with exponential backoff (1s, 2s,
//     4s, 8s, 16s), honoring the Retry-After header when present.
//  3. A circuit breaker opens after a 60% failure rate across at least
//     10 requests, rejecting calls for 2 minutes before probing again.
//
// # Caching
//
// Successful lookups are stored in a BadgerDB cache keyed by movie id
// with a TTL (default 7 days). The cache is in-memory unless a cache
// directory is configured, in which case it persists across restarts.
package metadata
