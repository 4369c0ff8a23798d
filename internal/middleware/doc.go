// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

// Package middleware provides chi-compatible HTTP middleware for request
// identification and Prometheus instrumentation.
//
// Both middlewares use the standard func(http.Handler) http.Handler shape
// and compose with the chi ecosystem middleware (cors, httprate)
// configured in internal/api. The usual stack is:
//
//	r.Use(middleware.RequestID)
//	r.Use(middleware.Prometheus)
//	r.Use(corsHandler)
//	r.Use(httprate.LimitByIP(...))
//
// RequestID runs first so retries and rate-limit rejections are traceable,
// and Prometheus wraps everything below it so the recorded latency covers
// the full handler chain.
package middleware
