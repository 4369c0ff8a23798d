// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

/*
Package services provides suture.Service wrappers for MovieMate components.

This package adapts application components to the suture v4 supervision
model, translating their lifecycle patterns into suture's context-aware
Serve pattern.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server with graceful shutdown
  - Converts the blocking ListenAndServe pattern to Serve
  - Configurable shutdown timeout for draining connections

Janitor (JanitorService):
  - Periodic maintenance on a ticker
  - Drops expired battles from the arena
  - Runs a garbage collection cycle on the enrichment cache

# Error Handling

Return values determine supervisor behavior:

	nil         -> service stopped cleanly, will not restart
	error       -> service crashed, supervisor will restart
	ctx.Err()   -> shutdown requested, normal termination

# Service Identification

All services implement fmt.Stringer; suture uses it to identify services
in log messages.
*/
package services
