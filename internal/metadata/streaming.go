// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package metadata

import (
	"encoding/binary"
	"hash/fnv"
	"net/url"

	"github.com/tomtom215/moviemate/internal/catalog"
)

// Provider describes one streaming service's availability for a movie.
type Provider struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
	URL       string `json:"url,omitempty"`
	Price     string `json:"price,omitempty"`
}

// Streaming reports mock streaming availability for a movie. Availability
// is a stable function of the movie id, so repeated requests for the same
// movie always agree. A real provider integration would slot in here; the
// mock needs no network and works even when enrichment is disabled.
func (s *Service) Streaming(m catalog.Movie) []Provider {
	bits := availabilityBits(m.ID)
	query := url.QueryEscape(m.Title)

	var available []Provider

	if bits&1 != 0 {
		available = append(available, Provider{
			Name:      "Netflix",
			Available: true,
			URL:       "https://www.netflix.com/search?q=" + query,
		})
	}

	if bits&2 != 0 {
		price := "$3.99"
		if bits&4 != 0 {
			price = "Included with Prime"
		}
		available = append(available, Provider{
			Name:      "Amazon Prime",
			Available: true,
			URL:       "https://www.amazon.com/s?k=" + query,
			Price:     price,
		})
	}

	return available
}

// availabilityBits hashes a movie id into a stable bit pattern that
// drives the mock availability decisions.
func availabilityBits(movieID int) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(movieID))
	_, _ = h.Write(buf[:])
	return h.Sum64()
}
