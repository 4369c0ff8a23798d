// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

/*
Package supervisor provides process supervision for MovieMate using suture v4.

This package implements a hierarchical supervisor tree that manages the
lifecycle of the long-running services in the application. It provides
Erlang/OTP-style supervision with automatic restart, failure isolation,
and graceful shutdown.

# Overview

The supervisor tree organizes services into two layers for failure
isolation:

	RootSupervisor ("moviemate")
	├── EnrichmentSupervisor ("enrichment-layer")
	│   └── JanitorService (battle expiry + cache GC)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

This hierarchy ensures that a crash in the maintenance loop never takes
down the HTTP server, and vice versa. Each layer has independent failure
counting.

# Failure Handling

The supervisor uses a failure counter with exponential decay:

 1. Each service failure increments the counter
 2. Counter decays exponentially over time (FailureDecay seconds)
 3. When counter exceeds FailureThreshold, supervisor enters backoff
 4. During backoff, restarts are delayed by FailureBackoff duration

Default values match suture's production-ready defaults: threshold 5,
decay 30s, backoff 15s, shutdown timeout 10s.

# Usage Example

Basic setup in main.go:

	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    log.Fatal(err)
	}

	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	tree.AddEnrichmentService(services.NewJanitorService(battles, meta, janitorCfg, logger))

	errCh := tree.ServeBackground(ctx)
	// ... wait for a signal ...
	cancel()
	<-errCh

# Service Interface

All services must implement suture.Service:

	type Service interface {
	    Serve(ctx context.Context) error
	}

Return behavior:
  - Return nil: service stopped cleanly, will not be restarted
  - Return error: service crashed, will be restarted
  - Context canceled: shutdown requested, return promptly

# Structured Logging

Supervisor events (starts, stops, failures, backoff) are logged through
the sutureslog adapter, which this application backs with zerolog via
logging.NewSlogLogger.

# Debugging Shutdown Issues

If services do not stop within the timeout:

	report, err := tree.UnstoppedServiceReport()
	for _, svc := range report {
	    log.Printf("service didn't stop: %v", svc)
	}

Common causes are goroutines not respecting context cancellation and
blocked network I/O without deadlines.
*/
package supervisor
