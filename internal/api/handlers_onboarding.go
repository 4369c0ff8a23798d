// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/tomtom215/moviemate/internal/catalog"
)

// onboardingGenres is the questionnaire's fixed genre order. Genres with
// no movies in the loaded catalog are skipped in the response.
var onboardingGenres = []string{
	"Action", "Comedy", "Drama", "Horror", "Romance",
	"Sci-Fi", "Thriller", "Animation", "Documentary", "Fantasy",
}

// onboardingMoviesPerGenre is how many sample movies each questionnaire
// entry shows.
const onboardingMoviesPerGenre = 4

// onboardingPickLimit caps the recommendations returned after onboarding.
const onboardingPickLimit = 20

// OnboardingQuestion is one questionnaire entry: a genre and a few
// example movies to rate or skip.
type OnboardingQuestion struct {
	Genre  string          `json:"genre"`
	Movies []catalog.Movie `json:"movies"`
}

// OnboardingCompleteRequest is the body for POST /onboarding/complete.
// Responses maps genre names to a per-genre reaction score; only the
// keys matter for the resulting picks. UserID is optional and, when
// set, excludes movies the user has already rated.
type OnboardingCompleteRequest struct {
	UserID    int            `json:"user_id" validate:"omitempty,min=1"`
	Responses map[string]int `json:"responses" validate:"required,min=1"`
}

// OnboardingPicks is the recommendation set seeded by questionnaire
// answers, ranked by genre overlap.
type OnboardingPicks struct {
	LikedGenres []string        `json:"liked_genres"`
	Movies      []catalog.Movie `json:"movies"`
}

// OnboardingQuestionnaire returns the genre questionnaire with sample
// movies per genre.
//
// Method: GET
// Path: /api/v1/onboarding/questionnaire
func (h *Handler) OnboardingQuestionnaire(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	questions := make([]OnboardingQuestion, 0, len(onboardingGenres))
	for _, genre := range onboardingGenres {
		movies := h.store.ByGenre(genre, onboardingMoviesPerGenre)
		if len(movies) == 0 {
			continue
		}
		questions = append(questions, OnboardingQuestion{Genre: genre, Movies: movies})
	}
	rw.Success(questions)
}

// OnboardingComplete turns questionnaire responses into first
// recommendations. Movies are scored by the share of the liked genres
// they carry; zero-overlap movies are dropped.
//
// Method: POST
// Path: /api/v1/onboarding/complete
func (h *Handler) OnboardingComplete(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req OnboardingCompleteRequest
	if err := decodeBody(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	liked := make([]string, 0, len(req.Responses))
	for genre := range req.Responses {
		liked = append(liked, genre)
	}
	sort.Strings(liked)

	rw.Success(OnboardingPicks{
		LikedGenres: liked,
		Movies:      h.genreOverlapPicks(liked, req.UserID),
	})
}

// genreOverlapPicks ranks the catalog by liked-genre overlap. Score is
// the matched share of the liked set, ties break toward lower movie IDs.
// Movies already rated by userID are excluded when userID is positive.
func (h *Handler) genreOverlapPicks(liked []string, userID int) []catalog.Movie {
	likedSet := make(map[string]struct{}, len(liked))
	for _, g := range liked {
		likedSet[strings.ToLower(g)] = struct{}{}
	}

	type scoredMovie struct {
		movie catalog.Movie
		score float64
	}
	var scored []scoredMovie

	h.store.View(func(tx catalog.Txn) {
		var seen map[int]float64
		if userID > 0 {
			seen = tx.UserRatings(userID)
		}
		tx.EachMovie(func(m *catalog.Movie) bool {
			if _, rated := seen[m.ID]; rated {
				return true
			}
			matches := 0
			for _, g := range m.Genres {
				if _, ok := likedSet[strings.ToLower(g)]; ok {
					matches++
				}
			}
			if matches == 0 {
				return true
			}
			scored = append(scored, scoredMovie{
				movie: *m,
				score: float64(matches) / float64(len(likedSet)),
			})
			return true
		})
	})

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		return scored[i].movie.ID < scored[j].movie.ID
	})
	if len(scored) > onboardingPickLimit {
		scored = scored[:onboardingPickLimit]
	}

	movies := make([]catalog.Movie, len(scored))
	for i, s := range scored {
		movies[i] = s.movie
	}
	return movies
}
