// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package recommend

import (
	"github.com/tomtom215/moviemate/internal/catalog"
)

// computeHybrid blends both engines' scores for a movie seed and a user
// seed. Only called with both seeds present and a weight strictly between
// 0 and 1; degenerate weights delegate to the single engine instead.
func (e *Engine) computeHybrid(movieID, userID, k int, weight float64) (*Result, error) {
	var (
		content map[int]float64
		collab  map[int]float64
		gen     uint64
		found   bool
		eligErr error
	)
	e.matrix.View(func(tx catalog.Txn) {
		gen = tx.Generation()
		seed, ok := tx.Movie(movieID)
		if !ok {
			return
		}
		found = true
		if err := e.collabEligible(tx, userID); err != nil {
			eligErr = err
			return
		}
		content = contentScores(tx, seed)
		neighbors := e.neighborsIn(tx, userID, e.cfg.NeighborK)
		collab = collabScores(tx, userID, neighbors)
	})
	if !found {
		return nil, catalog.ErrMovieNotFound
	}
	if eligErr != nil {
		return nil, eligErr
	}

	return &Result{
		Kind:       KindHybrid,
		Items:      blendScores(content, collab, weight, k),
		Generation: gen,
	}, nil
}

// blendScores min-max normalizes each engine's candidates to [0, 1]
// independently, then combines them over the union of both sets as
// weight*content + (1-weight)*collaborative. A movie absent from one side
// contributes 0 for that component. Normalization is local to this
// request; scores from different requests are not comparable.
func blendScores(content, collab map[int]float64, weight float64, k int) []Scored {
	content = normalizeScores(content)
	collab = normalizeScores(collab)

	combined := make(map[int]float64, len(content)+len(collab))
	parts := make(map[int]map[string]float64, len(content)+len(collab))

	for id, score := range content {
		combined[id] += weight * score
		addPart(parts, id, string(KindContent), score)
	}
	for id, score := range collab {
		combined[id] += (1 - weight) * score
		addPart(parts, id, string(KindCollaborative), score)
	}

	items := make([]Scored, 0, len(combined))
	for id, score := range combined {
		items = append(items, Scored{MovieID: id, Score: score, Parts: parts[id]})
	}
	sortScored(items)
	if len(items) > k {
		items = items[:k]
	}
	return items
}

// normalizeScores rescales scores into [0, 1] with min-max normalization,
// in place. When every score is equal there is no range to stretch and
// all entries become 0.5.
func normalizeScores(scores map[int]float64) map[int]float64 {
	if len(scores) == 0 {
		return scores
	}

	var minScore, maxScore float64
	first := true
	for _, score := range scores {
		if first {
			minScore, maxScore = score, score
			first = false
			continue
		}
		if score < minScore {
			minScore = score
		}
		if score > maxScore {
			maxScore = score
		}
	}

	span := maxScore - minScore
	if span == 0 {
		for id := range scores {
			scores[id] = 0.5
		}
		return scores
	}

	for id, score := range scores {
		scores[id] = (score - minScore) / span
	}
	return scores
}

// addPart records one normalized component of a blended score.
func addPart(parts map[int]map[string]float64, id int, kind string, score float64) {
	if parts[id] == nil {
		parts[id] = make(map[string]float64, 2)
	}
	parts[id][kind] = score
}
