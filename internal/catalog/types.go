// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

// Package catalog holds the in-memory movie catalog and user-item rating
// matrix that the recommendation engines query.
//
// The catalog is bootstrapped from MovieLens-style CSV files at startup and
// then mutated only through rating writes. A Store owns all shared state
// behind a single RWMutex: point reads take the read lock per call, engines
// run multi-step queries inside a View closure under one read lock, and the
// single writer path (rating add/update/delete) patches the sparse matrix in
// place and bumps the matrix generation.
package catalog

import "time"

// Movie is a catalog entry. Genre membership is carried twice: as canonical
// names for display and as a one-hot bitmask over the store's genre
// vocabulary for similarity math. The mask is assigned when the movie enters
// a Store and is zero for movies without genre tags.
type Movie struct {
	ID     int      `json:"id"`
	Title  string   `json:"title"`
	Year   int      `json:"year,omitempty"`
	Genres []string `json:"genres"`

	// GenreMask is the one-hot genre vector packed into a uint64.
	// Bit positions are store-specific; compare masks only within one Store.
	GenreMask uint64 `json:"-"`
}

// Rating is one user's score for one movie on the 0.5-5.0 scale.
type Rating struct {
	UserID    int       `json:"user_id"`
	MovieID   int       `json:"movie_id"`
	Value     float64   `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// RatingScale bounds for validation.
const (
	MinRatingValue = 0.5
	MaxRatingValue = 5.0
)

// GenreCount pairs a genre name with a movie or rating count.
type GenreCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// UserProfile summarizes one user's rating activity.
type UserProfile struct {
	UserID      int          `json:"user_id"`
	RatingCount int          `json:"rating_count"`
	MeanRating  float64      `json:"mean_rating"`
	TopGenres   []GenreCount `json:"top_genres"`
}

// Stats is a snapshot of store-wide counters.
type Stats struct {
	Movies     int          `json:"movies"`
	Users      int          `json:"users"`
	Ratings    int          `json:"ratings"`
	MeanRating float64      `json:"mean_rating"`
	Genres     []GenreCount `json:"genres"`
	Generation uint64       `json:"generation"`
}

// likedThreshold is the rating value from which a movie counts toward a
// user's top genres.
const likedThreshold = 3.5

// topGenreLimit caps the genres reported in a UserProfile.
const topGenreLimit = 5
