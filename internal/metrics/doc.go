// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

// Package metrics provides Prometheus instrumentation for every MovieMate
// subsystem. All collectors register themselves on the default registry at
// package load via promauto, so importing the package is enough to expose
// them through the /metrics endpoint.
//
// # Subsystems
//
//   - api_*: request counts, latencies, in-flight gauge and rate-limit
//     rejections, labeled by method and route pattern
//   - recommendation_*: query counts, latencies and result sizes per
//     engine kind
//   - engine_*: counters pulled live from the engine's own snapshot
//     (see RegisterEngineCollectors)
//   - catalog_*, rating_*: corpus size gauges, startup load timing and
//     rating mutation counts
//   - metadata_*, circuit_breaker_*: enrichment cache efficiency,
//     provider call outcomes and breaker state
//   - arena_*: battle and vote volumes
//
// # Label Cardinality
//
// Endpoint labels use chi route patterns ("/api/v1/movies/{id}"), never
// raw paths, so cardinality stays bounded by the route table. Error
// reasons are fixed enumerations, never error strings.
//
// # Usage
//
// Most call sites use the helper functions rather than the collectors:
//
//	start := time.Now()
//	result, err := engine.HybridFor(ctx, query)
//	metrics.RecordRecommendation("hybrid", time.Since(start), len(result.Items), err)
//
// Collectors that read live state (engine counters, uptime) are
// registered once from main with RegisterEngineCollectors and
// RegisterUptime.
package metrics
