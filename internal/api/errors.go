// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"errors"

	"github.com/tomtom215/moviemate/internal/arena"
	"github.com/tomtom215/moviemate/internal/catalog"
	"github.com/tomtom215/moviemate/internal/logging"
	"github.com/tomtom215/moviemate/internal/recommend"
)

// ErrorFrom maps a domain error onto the HTTP surface. Sentinel errors
// from the catalog, engine and arena carry their own message; anything
// unrecognized is logged and answered with a generic 500 so internal
// details never leak into responses.
func (rw *ResponseWriter) ErrorFrom(err error) {
	switch {
	case errors.Is(err, catalog.ErrMovieNotFound),
		errors.Is(err, catalog.ErrUserNotFound),
		errors.Is(err, catalog.ErrRatingNotFound),
		errors.Is(err, arena.ErrBattleNotFound):
		rw.NotFound(err.Error())

	case errors.Is(err, catalog.ErrInvalidRating):
		rw.ValidationError(err.Error(), nil)

	case errors.Is(err, recommend.ErrInvalidRequest),
		errors.Is(err, arena.ErrWrongMovie):
		rw.BadRequest(err.Error())

	case errors.Is(err, recommend.ErrInsufficientData):
		rw.InsufficientData(err.Error())

	default:
		logging.CtxErr(rw.r.Context(), err).
			Str("path", rw.r.URL.Path).
			Msg("Unhandled error in API handler")
		rw.InternalError("An unexpected error occurred")
	}
}
