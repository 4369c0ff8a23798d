// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package catalog

import "errors"

// Sentinel errors returned by catalog operations. Callers should test with
// errors.Is; the API layer maps these to HTTP status codes.
var (
	// ErrMovieNotFound indicates the requested movie ID is not in the catalog.
	ErrMovieNotFound = errors.New("movie not found")

	// ErrUserNotFound indicates the user has no ratings in the store.
	ErrUserNotFound = errors.New("user not found")

	// ErrRatingNotFound indicates no rating exists for the (user, movie) pair.
	ErrRatingNotFound = errors.New("rating not found")

	// ErrInvalidRating indicates a rating value outside the accepted scale.
	ErrInvalidRating = errors.New("rating must be between 0.5 and 5.0")

	// ErrDuplicateMovie indicates an attempt to add a movie ID that already exists.
	ErrDuplicateMovie = errors.New("duplicate movie id")

	// ErrTooManyGenres indicates the genre vocabulary exceeded the supported size.
	ErrTooManyGenres = errors.New("genre vocabulary exceeds 64 entries")
)
