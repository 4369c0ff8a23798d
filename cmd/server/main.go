// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tomtom215/moviemate/internal/api"
	"github.com/tomtom215/moviemate/internal/arena"
	"github.com/tomtom215/moviemate/internal/catalog"
	"github.com/tomtom215/moviemate/internal/config"
	"github.com/tomtom215/moviemate/internal/logging"
	"github.com/tomtom215/moviemate/internal/metadata"
	"github.com/tomtom215/moviemate/internal/metrics"
	"github.com/tomtom215/moviemate/internal/recommend"
	"github.com/tomtom215/moviemate/internal/supervisor"
	"github.com/tomtom215/moviemate/internal/supervisor/services"
)

// version is the build identity reported by /health and the app_info
// metric. Set at build time via -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Str("version", version).Msg("Starting MovieMate")

	store := loadCatalog(cfg)

	engine, err := recommend.NewEngine(store, recommend.Config{
		NeighborK:       cfg.Engine.NeighborK,
		MinRatings:      cfg.Engine.MinRatings,
		MaxK:            cfg.Engine.MaxK,
		Similarity:      cfg.Engine.Similarity,
		CacheTTL:        cfg.Cache.TTL,
		CacheMaxEntries: cfg.Cache.MaxEntries,
	}, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	// Enrichment is optional: with no API key the service reports
	// disabled and every movie serves without metadata.
	meta, err := metadata.New(cfg.Metadata)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize metadata enrichment")
	}
	defer func() {
		if err := meta.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing metadata cache")
		}
	}()
	if meta.Enabled() {
		logging.Info().Str("base_url", cfg.Metadata.BaseURL).Msg("Metadata enrichment enabled")
	} else {
		logging.Info().Msg("Metadata enrichment disabled (METADATA_API_KEY not set)")
	}

	battles := arena.New()

	registerCollectors(engine)

	handler := api.NewHandler(store, engine, meta, battles, cfg, version)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.DefaultChiMiddlewareConfig()))

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog wants an slog.Logger; bridge it to zerolog.
	tree, err := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddEnrichmentService(services.NewJanitorService(
		battles, meta, services.JanitorConfig{Interval: 5 * time.Minute}, logging.Logger()))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// loadCatalog reads the CSV catalog and bootstraps the store. The catalog
// is a startup dependency: any load failure aborts the process rather
// than surfacing later as per-request errors.
func loadCatalog(cfg *config.Config) *catalog.Store {
	start := time.Now()

	moviesPath := filepath.Join(cfg.Data.Dir, cfg.Data.MoviesFile)
	movies, err := catalog.LoadMovies(moviesPath)
	if err != nil {
		logging.Fatal().Err(err).Str("path", moviesPath).Msg("Failed to load movies")
	}

	ratingsPath := filepath.Join(cfg.Data.Dir, cfg.Data.RatingsFile)
	ratings, err := catalog.LoadRatings(ratingsPath)
	if err != nil {
		logging.Fatal().Err(err).Str("path", ratingsPath).Msg("Failed to load ratings")
	}

	store := catalog.NewStore()
	skipped, err := catalog.Bootstrap(store, movies, ratings)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to bootstrap catalog")
	}

	stats := store.Stats()
	metrics.RecordCatalogLoad(time.Since(start), stats.Movies, stats.Users, stats.Ratings, skipped)

	logging.Info().
		Int("movies", stats.Movies).
		Int("users", stats.Users).
		Int("ratings", stats.Ratings).
		Int("skipped_ratings", skipped).
		Dur("duration", time.Since(start)).
		Msg("Catalog loaded")

	return store
}

// registerCollectors wires the engine's counter snapshot, process uptime,
// and build identity into the default Prometheus registry.
func registerCollectors(engine *recommend.Engine) {
	err := metrics.RegisterEngineCollectors(prometheus.DefaultRegisterer,
		func() (requests, errors, cacheHits, cacheMisses, cacheEntries int64) {
			s := engine.Stats()
			return s.Requests, s.Errors, s.CacheHits, s.CacheMisses, int64(s.CacheEntries)
		})
	if err != nil {
		logging.Warn().Err(err).Msg("Failed to register engine collectors")
	}
	if err := metrics.RegisterUptime(prometheus.DefaultRegisterer, time.Now()); err != nil {
		logging.Warn().Err(err).Msg("Failed to register uptime collector")
	}
	metrics.SetAppInfo(version)
}
