// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Recommendation Engine Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation queries",
		},
		[]string{"kind", "status"}, // kind: "content", "collaborative", "hybrid"
	)

	RecommendationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_duration_seconds",
			Help:    "Recommendation query duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"kind"},
	)

	RecommendationResultSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendation_result_size",
			Help:    "Number of movies returned per recommendation query",
			Buckets: []float64{0, 1, 5, 10, 20, 30, 50},
		},
		[]string{"kind"},
	)

	// Catalog Metrics
	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_movies",
			Help: "Current number of movies in the catalog",
		},
	)

	CatalogUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_users",
			Help: "Current number of users with at least one rating",
		},
	)

	CatalogRatings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_ratings",
			Help: "Current number of ratings in the matrix",
		},
	)

	CatalogLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_load_duration_seconds",
			Help:    "Duration of the startup CSV load in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	CatalogLoadSkippedRatings = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_load_skipped_ratings_total",
			Help: "Ratings skipped at load time because their movie is not in the catalog",
		},
	)

	RatingWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rating_writes_total",
			Help: "Total number of rating mutations",
		},
		[]string{"operation"}, // "create", "update", "remove"
	)

	// Metadata Enrichment Metrics
	MetadataCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metadata_cache_hits_total",
			Help: "Total number of metadata cache hits",
		},
	)

	MetadataCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metadata_cache_misses_total",
			Help: "Total number of metadata cache misses (API fetch required)",
		},
	)

	MetadataAPICallDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "metadata_api_call_duration_seconds",
			Help:    "Duration of metadata provider API calls",
			Buckets: prometheus.DefBuckets,
		},
	)

	MetadataAPIErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "metadata_api_errors_total",
			Help: "Total number of metadata provider errors",
		},
		[]string{"reason"}, // "timeout", "rate_limited", "http_error", "decode", "breaker_open"
	)

	MetadataDegraded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "metadata_degraded_responses_total",
			Help: "Responses served without enrichment after a metadata failure",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Arena Metrics
	ArenaBattles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "arena_battles_total",
			Help: "Total number of movie battles served",
		},
	)

	ArenaVotes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "arena_votes_total",
			Help: "Total number of battle votes recorded",
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordAPIRequest records one served HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one recommendation query. Result size is
// only observed for successful queries.
func RecordRecommendation(kind string, duration time.Duration, resultSize int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	RecommendationRequests.WithLabelValues(kind, status).Inc()
	RecommendationDuration.WithLabelValues(kind).Observe(duration.Seconds())
	if err == nil {
		RecommendationResultSize.WithLabelValues(kind).Observe(float64(resultSize))
	}
}

// RecordCatalogLoad records the startup load and seeds the catalog gauges.
func RecordCatalogLoad(duration time.Duration, movies, users, ratings, skipped int) {
	CatalogLoadDuration.Observe(duration.Seconds())
	CatalogLoadSkippedRatings.Add(float64(skipped))
	UpdateCatalogGauges(movies, users, ratings)
}

// UpdateCatalogGauges refreshes the catalog size gauges after a write.
func UpdateCatalogGauges(movies, users, ratings int) {
	CatalogMovies.Set(float64(movies))
	CatalogUsers.Set(float64(users))
	CatalogRatings.Set(float64(ratings))
}

// RecordRatingWrite records one rating mutation.
func RecordRatingWrite(operation string) {
	RatingWrites.WithLabelValues(operation).Inc()
}

// RecordMetadataLookup records a metadata cache probe.
func RecordMetadataLookup(hit bool) {
	if hit {
		MetadataCacheHits.Inc()
	} else {
		MetadataCacheMisses.Inc()
	}
}

// RecordMetadataAPICall records one provider call; a non-empty reason
// classifies the failure.
func RecordMetadataAPICall(duration time.Duration, reason string) {
	MetadataAPICallDuration.Observe(duration.Seconds())
	if reason != "" {
		MetadataAPIErrors.WithLabelValues(reason).Inc()
	}
}

// RecordBreakerResult records the outcome of one request through a breaker.
func RecordBreakerResult(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordBreakerTransition records a breaker state change and updates the
// state gauge.
func RecordBreakerTransition(name, from, to string, state int) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}

// SetAppInfo publishes the build identity as a constant-1 gauge.
func SetAppInfo(version string) {
	AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
}

// RegisterEngineCollectors exposes the recommendation engine's own counter
// snapshot through reg, so cache figures come from the engine instead of
// being double-counted in handlers. Call once at startup.
func RegisterEngineCollectors(reg prometheus.Registerer, stats func() (requests, errors, cacheHits, cacheMisses, cacheEntries int64)) error {
	collectors := []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "engine_requests_total",
			Help: "Total number of requests handled by the recommendation engine",
		}, func() float64 { r, _, _, _, _ := stats(); return float64(r) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "engine_errors_total",
			Help: "Total number of recommendation engine errors",
		}, func() float64 { _, e, _, _, _ := stats(); return float64(e) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "engine_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		}, func() float64 { _, _, h, _, _ := stats(); return float64(h) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name: "engine_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		}, func() float64 { _, _, _, m, _ := stats(); return float64(m) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "engine_cache_entries",
			Help: "Current number of memoized recommendation results",
		}, func() float64 { _, _, _, _, n := stats(); return float64(n) }),
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// RegisterUptime exposes process uptime relative to start through reg.
func RegisterUptime(reg prometheus.Registerer, start time.Time) error {
	return reg.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "app_uptime_seconds",
		Help: "Application uptime in seconds",
	}, func() float64 { return time.Since(start).Seconds() }))
}
