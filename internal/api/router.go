// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/moviemate/internal/middleware"
)

// Router assembles the HTTP route table from the endpoint handlers and
// the middleware factory.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. A nil middleware factory gets the secure
// defaults.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// Setup configures all HTTP routes using the Chi router and returns the
// root handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	// Applied to ALL routes in order
	r.Use(middleware.RequestID)        // X-Request-ID header plus logging context
	r.Use(chimiddleware.RealIP)        // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)     // Recover from panics
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight

	// Unmatched routes and wrong methods still answer in the envelope.
	// Set before the Route calls so subrouters inherit both handlers.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		WriteNotFound(w, req, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		WriteError(w, req, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	// ========================
	// Health Endpoint
	// ========================
	// Permissive rate limiting so monitoring probes never starve.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/health", router.handler.Health)
	})

	// ========================
	// Core API Endpoints
	// ========================
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.Prometheus)

		r.Route("/movies", func(r chi.Router) {
			r.Get("/", router.handler.ListMovies)
			r.Get("/search", router.handler.SearchMovies)
			r.Get("/random", router.handler.RandomMovies)
			r.Get("/genre/{genre}", router.handler.MoviesByGenre)
			r.Get("/{movieID}", router.handler.GetMovie)
			r.Get("/{movieID}/streaming", router.handler.MovieStreaming)
			r.Get("/{movieID}/trivia", router.handler.MovieTrivia)
		})

		r.Get("/genres", router.handler.Genres)

		// Rating writes get the stricter write limit.
		r.Route("/ratings", func(r chi.Router) {
			r.With(router.chiMiddleware.RateLimitWrite()).Post("/", router.handler.AddRating)
			r.With(router.chiMiddleware.RateLimitWrite()).Delete("/{userID}/{movieID}", router.handler.RemoveRating)
			r.Get("/user/{userID}", router.handler.UserRatings)
		})

		r.Get("/users/{userID}/profile", router.handler.UserProfile)

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/content/{movieID}", router.handler.SimilarMovies)
			r.Get("/collaborative/{userID}", router.handler.RecommendForUser)
			r.Get("/hybrid", router.handler.HybridRecommend)
		})

		r.Get("/stats", router.handler.Stats)

		r.Route("/onboarding", func(r chi.Router) {
			r.Get("/questionnaire", router.handler.OnboardingQuestionnaire)
			r.Post("/complete", router.handler.OnboardingComplete)
		})

		r.Route("/discover", func(r chi.Router) {
			r.Get("/questions", router.handler.DiscoverQuestions)
			r.Post("/answers", router.handler.DiscoverAnswers)
		})

		// Battle creation and voting both mutate state, so they share
		// the write limit.
		r.Route("/battles", func(r chi.Router) {
			r.With(router.chiMiddleware.RateLimitWrite()).Get("/pair", router.handler.BattlePair)
			r.With(router.chiMiddleware.RateLimitWrite()).Post("/vote", router.handler.BattleVote)
			r.Get("/leaderboard", router.handler.BattleLeaderboard)
		})
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())

	return r
}
