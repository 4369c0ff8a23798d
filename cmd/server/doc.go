// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

/*
Package main is the entry point for the MovieMate server application.

MovieMate is a self-hosted movie recommendation engine and catalog API.
It serves content-based, collaborative, and hybrid recommendations over a
MovieLens-style CSV catalog, plus discovery surfaces: onboarding
questionnaires, mood-based guided discovery, movie trivia, and
head-to-head battle voting.

# Application Architecture

The server implements a layered architecture with suture v4 process
supervision:

	RootSupervisor ("moviemate")
	├── EnrichmentSupervisor ("enrichment-layer")
	│   └── Janitor (battle expiry + enrichment cache GC)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (REST API)

Component initialization order:

 1. Configuration: koanf v2 with defaults, config file, and environment
 2. Logging: zerolog with JSON/console output modes
 3. Catalog: CSV load into the in-memory store (startup dependency)
 4. Engine: recommendation engine with memoization cache
 5. Metadata: optional external enrichment collaborator
 6. Arena: in-memory battle store
 7. Supervisor tree and HTTP server

# Configuration

Configuration is loaded via koanf v2 with layered sources (highest
priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	SERVER_PORT=8454            # HTTP listen port
	SERVER_HOST=0.0.0.0         # Bind address

	# Catalog
	DATA_DIR=./data             # Directory holding the CSV files
	MOVIES_FILE=movies.csv      # MovieLens-style movies export
	RATINGS_FILE=ratings.csv    # MovieLens-style ratings export

	# Engine
	ENGINE_NEIGHBOR_K=10        # Collaborative neighborhood size
	ENGINE_SIMILARITY=cosine    # cosine or pearson
	ENGINE_CONTENT_WEIGHT=0.6   # Hybrid blend weight

	# Metadata enrichment (optional)
	METADATA_API_KEY=           # Empty disables enrichment
	METADATA_CACHE_DIR=         # Empty keeps the cache in memory

See config.example.yaml for the full file-based equivalent.

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:
  - Stops accepting new connections
  - Waits for in-flight requests to complete (10s timeout)
  - Reports services that failed to stop within the timeout

# Example Usage

Development with a local MovieLens export:

	export DATA_DIR=./data
	export LOG_FORMAT=console
	./moviemate

Production with metadata enrichment:

	export METADATA_API_KEY=your-omdb-api-key
	export METADATA_CACHE_DIR=/data/metadata-cache
	./moviemate
*/
package main
