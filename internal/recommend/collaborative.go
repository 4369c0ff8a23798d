// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package recommend

import (
	"fmt"
	"sort"

	"github.com/tomtom215/moviemate/internal/catalog"
)

// collabEligible reports whether the user can support a collaborative
// query. Absence from the matrix and a row below the minimum-ratings
// threshold both fail with ErrInsufficientData, so callers can tell
// "algorithm not applicable" apart from a valid empty result.
func (e *Engine) collabEligible(tx catalog.Txn, userID int) error {
	row := tx.UserRatings(userID)
	if len(row) == 0 {
		return fmt.Errorf("user %d has no ratings: %w", userID, ErrInsufficientData)
	}
	if len(row) < e.cfg.MinRatings {
		return fmt.Errorf("user %d has %d ratings, need %d: %w",
			userID, len(row), e.cfg.MinRatings, ErrInsufficientData)
	}
	return nil
}

// userSimilarity dispatches on the configured metric.
func (e *Engine) userSimilarity(a, b map[int]float64) float64 {
	if e.cfg.Similarity == SimilarityPearson {
		return pearsonSparse(a, b)
	}
	return cosineSparse(a, b)
}

// neighborsIn ranks the users most similar to the query user, inside an
// open view. Candidates come from the transpose index, so only users
// sharing at least one rated movie are ever scored; everyone else has
// similarity 0 and could never enter the ranking. Non-positive
// similarities are dropped. Ordered by similarity descending, ties by
// ascending user ID.
func (e *Engine) neighborsIn(tx catalog.Txn, userID, limit int) []Neighbor {
	queryRow := tx.UserRatings(userID)

	candidates := make(map[int]struct{})
	for movieID := range queryRow {
		for otherID := range tx.MovieRaters(movieID) {
			if otherID != userID {
				candidates[otherID] = struct{}{}
			}
		}
	}

	neighbors := make([]Neighbor, 0, len(candidates))
	for otherID := range candidates {
		sim := e.userSimilarity(queryRow, tx.UserRatings(otherID))
		if sim > 0 {
			neighbors = append(neighbors, Neighbor{UserID: otherID, Similarity: sim})
		}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].UserID < neighbors[j].UserID
	})

	if limit > 0 && len(neighbors) > limit {
		neighbors = neighbors[:limit]
	}
	return neighbors
}

// collabScores aggregates neighbor ratings into candidate scores. For
// every movie a neighbor rated that the query user has not:
//
//	score = sum(sim * rating) / sum(sim), over neighbors who rated it
//
// Movies with no contributing neighbor are excluded, not scored as zero.
func collabScores(tx catalog.Txn, userID int, neighbors []Neighbor) map[int]float64 {
	queryRow := tx.UserRatings(userID)

	num := make(map[int]float64)
	den := make(map[int]float64)
	for _, n := range neighbors {
		for movieID, rating := range tx.UserRatings(n.UserID) {
			if _, rated := queryRow[movieID]; rated {
				continue
			}
			num[movieID] += n.Similarity * rating
			den[movieID] += n.Similarity
		}
	}

	scores := make(map[int]float64, len(num))
	for movieID, weighted := range num {
		if d := den[movieID]; d > 0 {
			scores[movieID] = weighted / d
		}
	}
	return scores
}

// computeCollaborative produces the ranked collaborative result for one
// user.
func (e *Engine) computeCollaborative(userID, k int) (*Result, error) {
	var (
		items   []Scored
		gen     uint64
		eligErr error
	)
	e.matrix.View(func(tx catalog.Txn) {
		gen = tx.Generation()
		if err := e.collabEligible(tx, userID); err != nil {
			eligErr = err
			return
		}
		neighbors := e.neighborsIn(tx, userID, e.cfg.NeighborK)
		items = rankScores(collabScores(tx, userID, neighbors), k)
	})
	if eligErr != nil {
		return nil, eligErr
	}
	return &Result{Kind: KindCollaborative, Items: items, Generation: gen}, nil
}
