// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/moviemate/internal/catalog"
	"github.com/tomtom215/moviemate/internal/metrics"
)

// AddRatingRequest is the body for POST /api/v1/ratings. Rating values
// follow the half-star scale used by the catalog, 0.5 through 5.0.
type AddRatingRequest struct {
	UserID  int     `json:"user_id" validate:"required,min=1"`
	MovieID int     `json:"movie_id" validate:"required,min=1"`
	Rating  float64 `json:"rating" validate:"required,gte=0.5,lte=5"`
}

// RatingAck confirms a rating write. Created distinguishes a first
// rating from an overwrite of an existing one.
type RatingAck struct {
	UserID  int     `json:"user_id"`
	MovieID int     `json:"movie_id"`
	Rating  float64 `json:"rating"`
	Created bool    `json:"created"`
}

// UserRatingsResponse lists everything one user has rated.
type UserRatingsResponse struct {
	UserID  int              `json:"user_id"`
	Count   int              `json:"count"`
	Ratings []catalog.Rating `json:"ratings"`
}

// AddRating records or overwrites a user's rating for a movie.
//
// Method: POST
// Path: /api/v1/ratings
//
// Responds 201 when the rating is new, 200 when it replaces a prior
// value from the same user for the same movie.
func (h *Handler) AddRating(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req AddRatingRequest
	if err := decodeBody(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	created, err := h.store.AddRating(req.UserID, req.MovieID, req.Rating, time.Time{})
	if err != nil {
		rw.ErrorFrom(err)
		return
	}

	ack := RatingAck{
		UserID:  req.UserID,
		MovieID: req.MovieID,
		Rating:  req.Rating,
		Created: created,
	}
	if created {
		metrics.RecordRatingWrite("add")
		rw.Created(ack)
		return
	}
	metrics.RecordRatingWrite("update")
	rw.Success(ack)
}

// UserRatings returns all ratings by one user, ordered by movie ID.
//
// Method: GET
// Path: /api/v1/ratings/user/{userID}
func (h *Handler) UserRatings(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := pathInt(r, "userID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	ratings, err := h.store.UserRatings(userID)
	if err != nil {
		rw.ErrorFrom(err)
		return
	}

	rw.Success(UserRatingsResponse{
		UserID:  userID,
		Count:   len(ratings),
		Ratings: ratings,
	})
}

// RemoveRating deletes one user's rating of one movie.
//
// Method: DELETE
// Path: /api/v1/ratings/{userID}/{movieID}
func (h *Handler) RemoveRating(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	userID, err := pathInt(r, "userID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}
	movieID, err := pathInt(r, "movieID")
	if err != nil {
		rw.BadRequest(err.Error())
		return
	}

	if err := h.store.RemoveRating(userID, movieID); err != nil {
		rw.ErrorFrom(err)
		return
	}

	metrics.RecordRatingWrite("delete")
	rw.NoContent()
}
