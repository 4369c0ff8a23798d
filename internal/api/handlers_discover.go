// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"

	"github.com/tomtom215/moviemate/internal/catalog"
)

// DiscoverOption is one selectable answer for a discover question.
type DiscoverOption struct {
	Text  string `json:"text"`
	Value string `json:"value"`
}

// DiscoverQuestion is one step of the guided discovery flow.
type DiscoverQuestion struct {
	ID       string           `json:"id"`
	Question string           `json:"question"`
	Options  []DiscoverOption `json:"options"`
}

// DiscoverAnswersRequest is the body for POST /discover/answers. Keys
// are question IDs, values the chosen option values.
type DiscoverAnswersRequest struct {
	Answers map[string]string `json:"answers" validate:"required,min=1"`
}

// DiscoverPicks is the movie list matching the submitted answers.
type DiscoverPicks struct {
	Genre  string          `json:"genre"`
	Era    string          `json:"era,omitempty"`
	Movies []catalog.Movie `json:"movies"`
}

// discoverQuestions is the static question flow. The time answer is
// accepted but currently unused: the catalog carries no runtime data.
var discoverQuestions = []DiscoverQuestion{
	{
		ID:       "mood",
		Question: "What's your mood right now?",
		Options: []DiscoverOption{
			{Text: "Happy & Upbeat", Value: "happy"},
			{Text: "Serious & Thoughtful", Value: "serious"},
			{Text: "Scared & Thrilled", Value: "scared"},
			{Text: "Romantic", Value: "romantic"},
		},
	},
	{
		ID:       "time",
		Question: "How much time do you have?",
		Options: []DiscoverOption{
			{Text: "Quick watch (< 90 min)", Value: "short"},
			{Text: "Normal (90-120 min)", Value: "normal"},
			{Text: "Epic (> 120 min)", Value: "long"},
		},
	},
	{
		ID:       "era",
		Question: "Prefer classic or modern?",
		Options: []DiscoverOption{
			{Text: "Classic (before 1990)", Value: "classic"},
			{Text: "Modern (1990-2010)", Value: "modern"},
			{Text: "Recent (after 2010)", Value: "recent"},
		},
	},
}

// moodGenres maps mood answers to the genre the picks draw from.
var moodGenres = map[string]string{
	"happy":    "Comedy",
	"serious":  "Drama",
	"scared":   "Horror",
	"romantic": "Romance",
}

const (
	discoverFallbackGenre = "Drama"
	discoverGenreFetch    = 20
	discoverPickLimit     = 10
)

// DiscoverQuestions returns the guided discovery question flow.
//
// Method: GET
// Path: /api/v1/discover/questions
func (h *Handler) DiscoverQuestions(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(discoverQuestions)
}

// DiscoverAnswers maps answers to movie picks. The mood answer selects
// the genre, the era answer filters by release year. Unknown answer
// values fall back to the Drama genre and an unfiltered year range.
//
// Method: POST
// Path: /api/v1/discover/answers
func (h *Handler) DiscoverAnswers(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req DiscoverAnswersRequest
	if err := decodeBody(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	genre, ok := moodGenres[req.Answers["mood"]]
	if !ok {
		genre = discoverFallbackGenre
	}
	movies := h.store.ByGenre(genre, discoverGenreFetch)

	era := req.Answers["era"]
	movies = filterByEra(movies, era)
	if len(movies) > discoverPickLimit {
		movies = movies[:discoverPickLimit]
	}

	rw.Success(DiscoverPicks{Genre: genre, Era: era, Movies: movies})
}

// filterByEra keeps movies in the named release-year range. Movies with
// no recorded year are dropped when a known era is requested; unknown
// era values leave the list unchanged.
func filterByEra(movies []catalog.Movie, era string) []catalog.Movie {
	var keep func(year int) bool
	switch era {
	case "classic":
		keep = func(year int) bool { return year > 0 && year < 1990 }
	case "modern":
		keep = func(year int) bool { return year >= 1990 && year <= 2010 }
	case "recent":
		keep = func(year int) bool { return year > 2010 }
	default:
		return movies
	}

	filtered := movies[:0]
	for _, m := range movies {
		if keep(m.Year) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
