// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package recommend

import (
	"math"
	"math/bits"
)

// maskCosine computes cosine similarity between two one-hot genre vectors
// packed as bitmasks. Self-similarity of a non-empty vector is exactly 1.
// A zero vector has similarity 0 against everything, never NaN.
func maskCosine(a, b uint64) float64 {
	common := bits.OnesCount64(a & b)
	if common == 0 {
		return 0
	}
	normA := math.Sqrt(float64(bits.OnesCount64(a)))
	normB := math.Sqrt(float64(bits.OnesCount64(b)))
	return float64(common) / (normA * normB)
}

// cosineSparse computes cosine similarity between two sparse rating rows.
// Only co-rated movies contribute to the dot product; absent ratings act
// as zeros, so the norms span each row in full. Rows with no co-rated
// movies have similarity 0.
func cosineSparse(a, b map[int]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	outer, inner := a, b
	if len(b) < len(a) {
		outer, inner = b, a
	}

	var dot float64
	for id, v := range outer {
		if w, ok := inner[id]; ok {
			dot += v * w
		}
	}
	if dot == 0 {
		return 0
	}

	return dot / (rowNorm(a) * rowNorm(b))
}

// pearsonSparse computes the Pearson correlation of two rating rows over
// their co-rated subset. Fewer than two co-rated movies, or zero variance
// on either side, yields 0.
func pearsonSparse(a, b map[int]float64) float64 {
	var common []int
	for id := range a {
		if _, ok := b[id]; ok {
			common = append(common, id)
		}
	}
	if len(common) < 2 {
		return 0
	}

	var sumA, sumB float64
	for _, id := range common {
		sumA += a[id]
		sumB += b[id]
	}
	meanA := sumA / float64(len(common))
	meanB := sumB / float64(len(common))

	var num, denA, denB float64
	for _, id := range common {
		da := a[id] - meanA
		db := b[id] - meanB
		num += da * db
		denA += da * da
		denB += db * db
	}
	if denA == 0 || denB == 0 {
		return 0
	}

	return num / (math.Sqrt(denA) * math.Sqrt(denB))
}

// rowNorm returns the Euclidean norm of a sparse rating row.
func rowNorm(row map[int]float64) float64 {
	var sum float64
	for _, v := range row {
		sum += v * v
	}
	return math.Sqrt(sum)
}
