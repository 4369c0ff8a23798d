// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

// Package arena runs head-to-head movie battles: two movies enter, users
// vote, and a leaderboard ranks movies by votes won. All state is
// in-memory and process-local; battles are entertainment, not training
// data, so losing them on restart is acceptable.
package arena

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/moviemate/internal/metrics"
)

var (
	// ErrBattleNotFound indicates an unknown or expired battle id.
	ErrBattleNotFound = errors.New("arena: battle not found")

	// ErrWrongMovie indicates a vote for a movie that is not one of the
	// battle's two contenders.
	ErrWrongMovie = errors.New("arena: voted movie is not in this battle")
)

const (
	// defaultCapacity bounds how many open battles are retained.
	defaultCapacity = 10000

	// defaultBattleTTL is how long an untouched battle stays votable.
	defaultBattleTTL = time.Hour
)

// Battle is one head-to-head matchup between two movies. The arena holds
// only movie ids; the API layer joins in titles and posters from the
// catalog when shaping responses.
type Battle struct {
	ID         string    `json:"id"`
	Movie1ID   int       `json:"movie1_id"`
	Movie2ID   int       `json:"movie2_id"`
	Votes1     int       `json:"votes1"`
	Votes2     int       `json:"votes2"`
	TotalVotes int       `json:"total_votes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Standing is one leaderboard row: how many votes a movie has won and
// how many battles it has appeared in.
type Standing struct {
	MovieID int `json:"movie_id"`
	Wins    int `json:"wins"`
	Battles int `json:"battles"`
}

// Arena tracks open battles and cumulative per-movie standings. Safe for
// concurrent use; one mutex guards both structures so a vote updates the
// battle and the leaderboard atomically.
type Arena struct {
	mu        sync.Mutex
	battles   *battleStore
	standings map[int]*Standing
}

// New creates an arena with the default battle capacity and TTL.
func New() *Arena {
	return NewSized(defaultCapacity, defaultBattleTTL)
}

// NewSized creates an arena holding at most capacity open battles, each
// votable for ttl after its last activity. Non-positive arguments fall
// back to the defaults.
func NewSized(capacity int, ttl time.Duration) *Arena {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultBattleTTL
	}

	return &Arena{
		battles:   newBattleStore(capacity, ttl),
		standings: make(map[int]*Standing),
	}
}

// Create opens a battle between two catalog movies and returns it. The
// caller samples the pair; both movies are charged a battle appearance
// on their standings immediately.
func (a *Arena) Create(movie1ID, movie2ID int) Battle {
	battle := Battle{
		ID:        uuid.NewString(),
		Movie1ID:  movie1ID,
		Movie2ID:  movie2ID,
		CreatedAt: time.Now(),
	}

	a.mu.Lock()
	a.battles.add(battle)
	a.standingFor(movie1ID).Battles++
	a.standingFor(movie2ID).Battles++
	a.mu.Unlock()

	metrics.ArenaBattles.Inc()
	return battle
}

// Get returns a battle by id. Looking a battle up refreshes its recency,
// keeping battles a client is still viewing alive under eviction pressure.
func (a *Arena) Get(battleID string) (Battle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry := a.battles.get(battleID)
	if entry == nil {
		return Battle{}, ErrBattleNotFound
	}
	return entry.battle, nil
}

// Vote records a vote for one of a battle's two movies and returns the
// updated battle. Fails with ErrBattleNotFound for unknown or expired
// battles and ErrWrongMovie when the movie is not a contender.
func (a *Arena) Vote(battleID string, movieID int) (Battle, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entry := a.battles.get(battleID)
	if entry == nil {
		return Battle{}, ErrBattleNotFound
	}

	switch movieID {
	case entry.battle.Movie1ID:
		entry.battle.Votes1++
	case entry.battle.Movie2ID:
		entry.battle.Votes2++
	default:
		return Battle{}, ErrWrongMovie
	}
	entry.battle.TotalVotes++

	a.standingFor(movieID).Wins++

	metrics.ArenaVotes.Inc()
	return entry.battle, nil
}

// Leaderboard returns standings ranked by votes won, ties broken by
// ascending movie id. A non-positive limit returns every standing.
func (a *Arena) Leaderboard(limit int) []Standing {
	a.mu.Lock()
	board := make([]Standing, 0, len(a.standings))
	for _, s := range a.standings {
		board = append(board, *s)
	}
	a.mu.Unlock()

	sort.Slice(board, func(i, j int) bool {
		if board[i].Wins != board[j].Wins {
			return board[i].Wins > board[j].Wins
		}
		return board[i].MovieID < board[j].MovieID
	})

	if limit > 0 && len(board) > limit {
		board = board[:limit]
	}
	return board
}

// OpenBattles reports how many battles are currently stored, expired
// entries included until they are touched or swept.
func (a *Arena) OpenBattles() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.battles.len()
}

// CleanupExpired drops expired battles and reports how many were
// removed. The background janitor calls this periodically.
func (a *Arena) CleanupExpired() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.battles.cleanupExpired()
}

// standingFor returns the standing row for a movie, creating it on first
// reference. Caller must hold the lock.
func (a *Arena) standingFor(movieID int) *Standing {
	s, ok := a.standings[movieID]
	if !ok {
		s = &Standing{MovieID: movieID}
		a.standings[movieID] = s
	}
	return s
}
