// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/moviemate/internal/arena"
	"github.com/tomtom215/moviemate/internal/catalog"
)

// BattleResponse is a battle with both contenders hydrated to full
// catalog entries.
type BattleResponse struct {
	ID         string        `json:"id"`
	Movie1     catalog.Movie `json:"movie1"`
	Movie2     catalog.Movie `json:"movie2"`
	Votes1     int           `json:"votes1"`
	Votes2     int           `json:"votes2"`
	TotalVotes int           `json:"total_votes"`
	CreatedAt  time.Time     `json:"created_at"`
}

// BattleVoteRequest is the body for POST /api/v1/battles/vote.
type BattleVoteRequest struct {
	BattleID        string `json:"battle_id" validate:"required"`
	SelectedMovieID int    `json:"selected_movie_id" validate:"required,min=1"`
}

// LeaderboardEntry is one movie's battle record.
type LeaderboardEntry struct {
	MovieID int    `json:"movie_id"`
	Title   string `json:"title"`
	Wins    int    `json:"wins"`
	Battles int    `json:"battles"`
}

// BattlePair opens a new battle between two random movies.
//
// Method: GET
// Path: /api/v1/battles/pair
func (h *Handler) BattlePair(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	pair := h.store.Random(2)
	if len(pair) < 2 {
		rw.ServiceUnavailable("not enough movies for a battle")
		return
	}

	battle := h.battles.Create(pair[0].ID, pair[1].ID)
	rw.Created(h.battleResponse(battle))
}

// BattleVote records a vote for one side of an open battle.
//
// Method: POST
// Path: /api/v1/battles/vote
func (h *Handler) BattleVote(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req BattleVoteRequest
	if err := decodeBody(w, r, &req); err != nil {
		rw.BadRequest(err.Error())
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		rw.ValidationError(apiErr.Message, apiErr.Details)
		return
	}

	battle, err := h.battles.Vote(req.BattleID, req.SelectedMovieID)
	if err != nil {
		rw.ErrorFrom(err)
		return
	}
	rw.Success(h.battleResponse(battle))
}

// BattleLeaderboard ranks movies by battle wins.
//
// Method: GET
// Path: /api/v1/battles/leaderboard?limit=
func (h *Handler) BattleLeaderboard(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	limit := h.clampLimit(getIntParam(r, "limit", 10))
	standings := h.battles.Leaderboard(limit)

	entries := make([]LeaderboardEntry, len(standings))
	for i, s := range standings {
		entries[i] = LeaderboardEntry{
			MovieID: s.MovieID,
			Title:   h.movieTitle(s.MovieID),
			Wins:    s.Wins,
			Battles: s.Battles,
		}
	}
	rw.Success(entries)
}

// battleResponse hydrates both contender IDs to catalog entries.
func (h *Handler) battleResponse(b arena.Battle) BattleResponse {
	return BattleResponse{
		ID:         b.ID,
		Movie1:     h.movieOrShell(b.Movie1ID),
		Movie2:     h.movieOrShell(b.Movie2ID),
		Votes1:     b.Votes1,
		Votes2:     b.Votes2,
		TotalVotes: b.TotalVotes,
		CreatedAt:  b.CreatedAt,
	}
}

// movieOrShell looks the movie up, falling back to a bare ID if it is
// gone from the catalog.
func (h *Handler) movieOrShell(movieID int) catalog.Movie {
	m, err := h.store.Movie(movieID)
	if err != nil {
		return catalog.Movie{ID: movieID}
	}
	return m
}

func (h *Handler) movieTitle(movieID int) string {
	m, err := h.store.Movie(movieID)
	if err != nil {
		return ""
	}
	return m.Title
}
