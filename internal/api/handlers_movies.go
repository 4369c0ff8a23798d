// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"fmt"
	"math/rand"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/moviemate/internal/catalog"
	"github.com/tomtom215/moviemate/internal/metadata"
)

// MovieDetail is a catalog entry plus its best-effort enrichment. The
// metadata block is omitted when enrichment is disabled, the provider is
// unreachable or the movie is unknown to it.
type MovieDetail struct {
	catalog.Movie
	Metadata *metadata.Enrichment `json:"metadata,omitempty"`
}

// StreamingResponse lists mock provider availability for one movie.
type StreamingResponse struct {
	MovieID   int                 `json:"movie_id"`
	Title     string              `json:"title"`
	Providers []metadata.Provider `json:"providers"`
}

// TriviaResponse is a multiple-choice question about one movie. Options
// contains the correct title among decoys; CorrectAnswer names it.
type TriviaResponse struct {
	MovieID       int      `json:"movie_id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// SearchMoviesRequest validates the /movies/search query parameters.
type SearchMoviesRequest struct {
	Query string `json:"q" validate:"required,min=1,max=200"`
	Limit int    `json:"limit" validate:"omitempty,min=1"`
}

// ListMovies returns a page of the catalog in ascending ID order.
//
// Method: GET
// Path: /api/v1/movies?offset=&limit=&genre=
//
// The optional genre parameter filters the listing, in which case only
// the matched page is reported, without a grand total.
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	def, _ := h.pageSizeConfig()
	limit := h.clampLimit(getIntParam(r, "limit", def))
	offset := getIntParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	if genre := strings.TrimSpace(r.URL.Query().Get("genre")); genre != "" {
		movies := h.store.ByGenre(genre, limit)
		rw.SuccessWithPagination(movies, &PaginationMeta{
			Count: len(movies),
			Limit: limit,
		})
		return
	}

	movies, total := h.store.Movies(offset, limit)
	rw.SuccessWithPagination(movies, &PaginationMeta{
		Total:   total,
		Count:   len(movies),
		Offset:  offset,
		Limit:   limit,
		HasMore: offset+len(movies) < total,
	})
}

// GetMovie returns a single movie with best-effort metadata enrichment.
//
// Method: GET
// Path: /api/v1/movies/{movieID}
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	movieID, err := pathInt(r, "movieID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	m, err := h.store.Movie(movieID)
	if err != nil {
		rw.ErrorFrom(err)
		return
	}

	detail := MovieDetail{Movie: m}
	if enr := h.metadata.Enrich(r.Context(), m); !enr.IsZero() {
		detail.Metadata = &enr
	}
	rw.Success(detail)
}

// SearchMovies returns movies whose title contains the query string,
// case-insensitive.
//
// Method: GET
// Path: /api/v1/movies/search?q=&limit=
func (h *Handler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req := SearchMoviesRequest{
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
		Limit: h.clampLimit(getIntParam(r, "limit", 10)),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	movies := h.store.Search(req.Query, req.Limit)
	rw.SuccessWithPagination(movies, &PaginationMeta{
		Count: len(movies),
		Limit: req.Limit,
	})
}

// RandomMovies returns a uniform random sample of the catalog.
//
// Method: GET
// Path: /api/v1/movies/random?count=
func (h *Handler) RandomMovies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	count := h.clampLimit(getIntParam(r, "count", 10))
	rw.Success(h.store.Random(count))
}

// MoviesByGenre returns movies tagged with the genre. An unknown genre
// yields an empty list, not an error.
//
// Method: GET
// Path: /api/v1/movies/genre/{genre}?limit=
func (h *Handler) MoviesByGenre(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	genre := chi.URLParam(r, "genre")
	limit := h.clampLimit(getIntParam(r, "limit", 20))

	movies := h.store.ByGenre(genre, limit)
	rw.SuccessWithPagination(movies, &PaginationMeta{
		Count: len(movies),
		Limit: limit,
	})
}

// Genres returns the genre vocabulary with per-genre movie counts.
//
// Method: GET
// Path: /api/v1/genres
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.store.Genres())
}

// MovieStreaming returns mock streaming availability for one movie. The
// provider set is deterministic per movie so repeated requests agree.
//
// Method: GET
// Path: /api/v1/movies/{movieID}/streaming
func (h *Handler) MovieStreaming(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	movieID, err := pathInt(r, "movieID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	m, err := h.store.Movie(movieID)
	if err != nil {
		rw.ErrorFrom(err)
		return
	}

	rw.Success(StreamingResponse{
		MovieID:   m.ID,
		Title:     m.Title,
		Providers: h.metadata.Streaming(m),
	})
}

// MovieTrivia builds a multiple-choice question about one movie. Decoy
// options are drawn from movies sharing a genre with the subject; the
// sampling is seeded by the movie ID so the same movie always yields the
// same question.
//
// Method: GET
// Path: /api/v1/movies/{movieID}/trivia
func (h *Handler) MovieTrivia(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	movieID, err := pathInt(r, "movieID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	seed, err := h.store.Movie(movieID)
	if err != nil {
		rw.ErrorFrom(err)
		return
	}

	if seed.Year == 0 && len(seed.Genres) == 0 {
		rw.InsufficientData("movie has no year or genre data for a trivia question")
		return
	}

	rw.Success(h.buildTrivia(seed))
}

// buildTrivia assembles the question and options for a movie with at
// least a year or a genre set.
func (h *Handler) buildTrivia(seed catalog.Movie) TriviaResponse {
	var shared, disjoint, others []catalog.Movie
	h.store.View(func(tx catalog.Txn) {
		tx.EachMovie(func(m *catalog.Movie) bool {
			if m.ID == seed.ID {
				return true
			}
			if m.GenreMask&seed.GenreMask != 0 {
				shared = append(shared, *m)
			} else {
				disjoint = append(disjoint, *m)
			}
			others = append(others, *m)
			return true
		})
	})

	genreList := strings.Join(seed.Genres, ", ")

	// The year question uses same-genre decoys so genre tags cannot give
	// the answer away. Without a year, the question asks about the genre
	// itself, which requires decoys sharing none of the subject's tags.
	var question string
	var decoys []catalog.Movie
	switch {
	case seed.Year > 0 && genreList != "":
		question = fmt.Sprintf("Which of these %s movies was released in %d?", genreList, seed.Year)
		decoys = shared
	case seed.Year > 0:
		question = fmt.Sprintf("Which of these movies was released in %d?", seed.Year)
		decoys = others
	default:
		question = fmt.Sprintf("Which of these movies is tagged %s?", genreList)
		decoys = disjoint
	}
	if len(decoys) < 3 && seed.Year > 0 {
		decoys = others
	}

	rng := rand.New(rand.NewSource(int64(seed.ID)))

	// Partial Fisher-Yates: the first positions become the decoy sample.
	take := len(decoys)
	if take > 3 {
		take = 3
	}
	for i := 0; i < take; i++ {
		j := i + rng.Intn(len(decoys)-i)
		decoys[i], decoys[j] = decoys[j], decoys[i]
	}

	options := make([]string, 0, take+1)
	for _, m := range decoys[:take] {
		options = append(options, m.Title)
	}
	options = append(options, seed.Title)
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return TriviaResponse{
		MovieID:       seed.ID,
		Question:      question,
		Options:       options,
		CorrectAnswer: seed.Title,
	}
}
