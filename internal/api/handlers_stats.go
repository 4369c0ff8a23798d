// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"
	"strconv"

	"github.com/tomtom215/moviemate/internal/catalog"
	"github.com/tomtom215/moviemate/internal/recommend"
)

// StatsResponse reports catalog counters, the rating value distribution
// and engine cache counters in one payload. Histogram keys are the
// half-star values formatted with one decimal, "0.5" through "5.0".
type StatsResponse struct {
	catalog.Stats
	RatingHistogram map[string]int        `json:"rating_histogram"`
	Engine          recommend.EngineStats `json:"engine"`
}

// Stats returns catalog and engine statistics.
//
// Method: GET
// Path: /api/v1/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	histogram := make(map[string]int)
	h.store.View(func(tx catalog.Txn) {
		tx.EachUser(func(_ int, ratings map[int]float64) bool {
			for _, v := range ratings {
				histogram[strconv.FormatFloat(v, 'f', 1, 64)]++
			}
			return true
		})
	})

	rw.Success(StatsResponse{
		Stats:           h.store.Stats(),
		RatingHistogram: histogram,
		Engine:          h.engine.Stats(),
	})
}
