// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"
	"strings"
	"testing"
)

func TestBattleLifecycle(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	var battle BattleResponse
	decodeData(t, api.get(t, "/api/v1/battles/pair"), http.StatusCreated, &battle)

	if battle.ID == "" {
		t.Fatal("battle ID is empty")
	}
	if battle.Movie1.ID == battle.Movie2.ID {
		t.Fatalf("contenders are the same movie: %d", battle.Movie1.ID)
	}
	if battle.Movie1.Title == "" || battle.Movie2.Title == "" {
		t.Errorf("contenders not hydrated: %+v vs %+v", battle.Movie1, battle.Movie2)
	}
	if battle.TotalVotes != 0 {
		t.Errorf("new battle TotalVotes = %d, want 0", battle.TotalVotes)
	}

	t.Run("votes tally per side", func(t *testing.T) {
		vote := func(movieID int) BattleResponse {
			t.Helper()
			rr := api.postJSON(t, "/api/v1/battles/vote", BattleVoteRequest{
				BattleID:        battle.ID,
				SelectedMovieID: movieID,
			})
			var updated BattleResponse
			decodeData(t, rr, http.StatusOK, &updated)
			return updated
		}

		vote(battle.Movie1.ID)
		vote(battle.Movie1.ID)
		updated := vote(battle.Movie2.ID)

		if updated.Votes1 != 2 || updated.Votes2 != 1 {
			t.Errorf("votes = %d/%d, want 2/1", updated.Votes1, updated.Votes2)
		}
		if updated.TotalVotes != 3 {
			t.Errorf("TotalVotes = %d, want 3", updated.TotalVotes)
		}
	})

	t.Run("leaderboard ranks by wins", func(t *testing.T) {
		var entries []LeaderboardEntry
		decodeData(t, api.get(t, "/api/v1/battles/leaderboard"), http.StatusOK, &entries)

		if len(entries) != 2 {
			t.Fatalf("len(entries) = %d, want 2", len(entries))
		}
		first, second := entries[0], entries[1]
		if first.MovieID != battle.Movie1.ID || first.Wins != 2 {
			t.Errorf("leader = %+v, want movie %d with 2 wins", first, battle.Movie1.ID)
		}
		if second.MovieID != battle.Movie2.ID || second.Wins != 1 {
			t.Errorf("runner-up = %+v, want movie %d with 1 win", second, battle.Movie2.ID)
		}
		for _, e := range entries {
			if e.Battles != 1 {
				t.Errorf("movie %d Battles = %d, want 1", e.MovieID, e.Battles)
			}
			if e.Title == "" {
				t.Errorf("movie %d has no hydrated title", e.MovieID)
			}
		}
	})

	t.Run("vote for outside movie rejected", func(t *testing.T) {
		outsider := 0
		for id := 1; id <= 10; id++ {
			if id != battle.Movie1.ID && id != battle.Movie2.ID {
				outsider = id
				break
			}
		}
		rr := api.postJSON(t, "/api/v1/battles/vote", BattleVoteRequest{
			BattleID:        battle.ID,
			SelectedMovieID: outsider,
		})
		assertErrorCode(t, rr, http.StatusBadRequest, ErrCodeBadRequest)
	})
}

func TestBattleVoteValidation(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	tests := []struct {
		name     string
		body     BattleVoteRequest
		wantCode string
	}{
		{
			name:     "unknown battle",
			body:     BattleVoteRequest{BattleID: "no-such-battle", SelectedMovieID: 1},
			wantCode: ErrCodeNotFound,
		},
		{
			name:     "missing battle id",
			body:     BattleVoteRequest{SelectedMovieID: 1},
			wantCode: ErrCodeValidationError,
		},
		{
			name:     "missing movie id",
			body:     BattleVoteRequest{BattleID: "abc"},
			wantCode: ErrCodeValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := api.postJSON(t, "/api/v1/battles/vote", tt.body)
			wantStatus := http.StatusBadRequest
			if tt.wantCode == ErrCodeNotFound {
				wantStatus = http.StatusNotFound
			}
			assertErrorCode(t, rr, wantStatus, tt.wantCode)
		})
	}

	t.Run("malformed body", func(t *testing.T) {
		rr := api.do(t, http.MethodPost, "/api/v1/battles/vote", strings.NewReader("{not json"))
		assertErrorCode(t, rr, http.StatusBadRequest, ErrCodeBadRequest)
	})
}

func TestBattleLeaderboardEmpty(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	var entries []LeaderboardEntry
	decodeData(t, api.get(t, "/api/v1/battles/leaderboard"), http.StatusOK, &entries)
	if len(entries) != 0 {
		t.Errorf("entries = %v, want none before any battle", entries)
	}
}
