// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package recommend

import (
	"github.com/tomtom215/moviemate/internal/catalog"
)

// contentScores scores every catalog movie against the seed's genre
// vector. The seed itself is excluded and zero-similarity movies are
// dropped, so a seed with no genres produces an empty candidate set
// rather than an error. One pass over the catalog per query.
func contentScores(tx catalog.Txn, seed *catalog.Movie) map[int]float64 {
	scores := make(map[int]float64)
	tx.EachMovie(func(m *catalog.Movie) bool {
		if m.ID == seed.ID {
			return true
		}
		if sim := maskCosine(seed.GenreMask, m.GenreMask); sim > 0 {
			scores[m.ID] = sim
		}
		return true
	})
	return scores
}

// computeSimilar produces the ranked content result for one seed movie.
func (e *Engine) computeSimilar(movieID, k int) (*Result, error) {
	var (
		items []Scored
		gen   uint64
		found bool
	)
	e.matrix.View(func(tx catalog.Txn) {
		gen = tx.Generation()
		seed, ok := tx.Movie(movieID)
		if !ok {
			return
		}
		found = true
		items = rankScores(contentScores(tx, seed), k)
	})
	if !found {
		return nil, catalog.ErrMovieNotFound
	}
	return &Result{Kind: KindContent, Items: items, Generation: gen}, nil
}
