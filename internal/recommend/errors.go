// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package recommend

import "errors"

var (
	// ErrInsufficientData marks collaborative queries for users who are
	// absent from the rating matrix or below the minimum-ratings
	// threshold. It is distinct from an empty successful result: callers
	// surface it as "not enough data yet", not as a true error and not
	// as an empty list.
	ErrInsufficientData = errors.New("insufficient rating data")

	// ErrInvalidRequest marks malformed query parameters: k <= 0, a
	// blend weight outside [0, 1], or a hybrid query with no seed.
	ErrInvalidRequest = errors.New("invalid recommendation request")
)
