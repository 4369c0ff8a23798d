// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"math"
	"net/http"
	"sort"

	"github.com/tomtom215/moviemate/internal/catalog"
)

// GenreAverage is one user's mean rating across a genre.
type GenreAverage struct {
	Name  string  `json:"name"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// UserProfileResponse extends the catalog profile with per-genre taste
// derived from the user's rating history. Favorite genres average 4.0
// or better, disliked genres 2.5 or worse.
type UserProfileResponse struct {
	catalog.UserProfile
	GenreAverages  []GenreAverage `json:"genre_averages"`
	FavoriteGenres []string       `json:"favorite_genres"`
	DislikedGenres []string       `json:"disliked_genres,omitempty"`
}

const (
	favoriteGenreFloor = 4.0
	dislikedGenreCeil  = 2.5
	maxFavoriteGenres  = 5
)

// UserProfile returns rating statistics and genre taste for one user.
//
// Method: GET
// Path: /api/v1/users/{userID}/profile
func (h *Handler) UserProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := pathInt(r, "userID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	profile, err := h.store.UserProfile(userID)
	if err != nil {
		rw.ErrorFrom(err)
		return
	}

	averages := h.genreAverages(userID)

	resp := UserProfileResponse{
		UserProfile:    profile,
		GenreAverages:  averages,
		FavoriteGenres: []string{},
	}
	for _, ga := range averages {
		if ga.Mean >= favoriteGenreFloor && len(resp.FavoriteGenres) < maxFavoriteGenres {
			resp.FavoriteGenres = append(resp.FavoriteGenres, ga.Name)
		}
		if ga.Mean <= dislikedGenreCeil {
			resp.DislikedGenres = append(resp.DislikedGenres, ga.Name)
		}
	}

	rw.Success(resp)
}

// genreAverages computes the user's mean rating per genre, ordered by
// mean descending with name as the tiebreak.
func (h *Handler) genreAverages(userID int) []GenreAverage {
	type acc struct {
		sum   float64
		count int
	}
	byGenre := make(map[string]*acc)

	h.store.View(func(tx catalog.Txn) {
		for movieID, value := range tx.UserRatings(userID) {
			m, ok := tx.Movie(movieID)
			if !ok {
				continue
			}
			for _, g := range m.Genres {
				a := byGenre[g]
				if a == nil {
					a = &acc{}
					byGenre[g] = a
				}
				a.sum += value
				a.count++
			}
		}
	})

	averages := make([]GenreAverage, 0, len(byGenre))
	for name, a := range byGenre {
		averages = append(averages, GenreAverage{
			Name:  name,
			Mean:  math.Round(a.sum/float64(a.count)*100) / 100,
			Count: a.count,
		})
	}
	sort.Slice(averages, func(i, j int) bool {
		if averages[i].Mean != averages[j].Mean {
			return averages[i].Mean > averages[j].Mean
		}
		return averages[i].Name < averages[j].Name
	})
	return averages
}
