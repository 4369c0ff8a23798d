// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"

	"github.com/tomtom215/moviemate/internal/catalog"
	"github.com/tomtom215/moviemate/internal/recommend"
)

// RecommendedMovie pairs a full catalog entry with its ranking score.
// Parts carries the per-engine contributions on hybrid results.
type RecommendedMovie struct {
	Movie catalog.Movie      `json:"movie"`
	Score float64            `json:"score"`
	Parts map[string]float64 `json:"parts,omitempty"`
}

// RecommendationList is a hydrated engine result. Generation identifies
// the rating-matrix snapshot the ranking was computed against.
type RecommendationList struct {
	Kind       string             `json:"kind"`
	Items      []RecommendedMovie `json:"items"`
	Generation uint64             `json:"generation"`
	CacheHit   bool               `json:"cache_hit"`
}

// SimilarMovies ranks movies by content similarity to a seed movie.
//
// Method: GET
// Path: /api/v1/recommendations/content/{movieID}?k=
func (h *Handler) SimilarMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	movieID, err := pathInt(r, "movieID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	k := getIntParam(r, "k", h.defaultK())

	result, err := h.engine.SimilarMovies(r.Context(), movieID, k)
	if err != nil {
		rw.ErrorFrom(err)
		return
	}
	rw.Success(h.hydrate(result))
}

// RecommendForUser ranks unseen movies for a user from neighbor ratings.
//
// Method: GET
// Path: /api/v1/recommendations/collaborative/{userID}?k=
func (h *Handler) RecommendForUser(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := pathInt(r, "userID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	k := getIntParam(r, "k", h.defaultK())

	result, err := h.engine.RecommendFor(r.Context(), userID, k)
	if err != nil {
		rw.ErrorFrom(err)
		return
	}
	rw.Success(h.hydrate(result))
}

// HybridRecommend blends content and collaborative rankings. At least one
// of user_id and movie_id is required; with a single seed the engine
// degrades to that side and reports its kind.
//
// Method: GET
// Path: /api/v1/recommendations/hybrid?user_id=&movie_id=&k=&content_weight=
func (h *Handler) HybridRecommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	query := recommend.HybridQuery{
		MovieID:       getIntParam(r, "movie_id", 0),
		UserID:        getIntParam(r, "user_id", 0),
		K:             getIntParam(r, "k", h.defaultK()),
		ContentWeight: getFloatParam(r, "content_weight", h.defaultContentWeight()),
	}

	result, err := h.engine.HybridFor(r.Context(), query)
	if err != nil {
		rw.ErrorFrom(err)
		return
	}
	rw.Success(h.hydrate(result))
}

// hydrate swaps scored movie IDs for full catalog entries. Items whose
// movie vanished between ranking and lookup are dropped.
func (h *Handler) hydrate(result *recommend.Result) RecommendationList {
	items := make([]RecommendedMovie, 0, len(result.Items))
	for _, s := range result.Items {
		m, err := h.store.Movie(s.MovieID)
		if err != nil {
			continue
		}
		items = append(items, RecommendedMovie{
			Movie: m,
			Score: s.Score,
			Parts: s.Parts,
		})
	}
	return RecommendationList{
		Kind:       string(result.Kind),
		Items:      items,
		Generation: result.Generation,
		CacheHit:   result.CacheHit,
	}
}
