// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package catalog

import "strings"

// noGenreMarkers are placeholder tags that mean "untagged" in MovieLens
// exports. They contribute no genre bit.
var noGenreMarkers = map[string]bool{
	"(no genres listed)": true,
	"unknown":            true,
}

// IsNoGenreMarker reports whether the tag is an untagged-placeholder rather
// than a real genre.
func IsNoGenreMarker(tag string) bool {
	return noGenreMarkers[strings.ToLower(strings.TrimSpace(tag))]
}

// genreIndex assigns stable bit positions to genre names in first-seen
// order. The bitmask representation caps the vocabulary at 64 genres, which
// comfortably covers MovieLens-style data (19 genres).
type genreIndex struct {
	names []string
	bits  map[string]int
}

func newGenreIndex() *genreIndex {
	return &genreIndex{bits: make(map[string]int)}
}

// add returns the bit for name, registering it if unseen.
func (g *genreIndex) add(name string) (int, error) {
	key := strings.ToLower(name)
	if bit, ok := g.bits[key]; ok {
		return bit, nil
	}
	if len(g.names) >= 64 {
		return 0, ErrTooManyGenres
	}
	bit := len(g.names)
	g.names = append(g.names, name)
	g.bits[key] = bit
	return bit, nil
}

// bit returns the bit for name if registered.
func (g *genreIndex) bit(name string) (int, bool) {
	b, ok := g.bits[strings.ToLower(name)]
	return b, ok
}

// canonical returns the first-seen spelling for name if registered.
func (g *genreIndex) canonical(name string) (string, bool) {
	b, ok := g.bits[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	return g.names[b], true
}

// maskOf registers each genre and folds it into a one-hot bitmask.
// Untagged-placeholder entries are skipped.
func (g *genreIndex) maskOf(genres []string) (uint64, error) {
	var mask uint64
	for _, name := range genres {
		name = strings.TrimSpace(name)
		if name == "" || IsNoGenreMarker(name) {
			continue
		}
		bit, err := g.add(name)
		if err != nil {
			return 0, err
		}
		mask |= 1 << uint(bit)
	}
	return mask, nil
}

// size returns the number of registered genres.
func (g *genreIndex) size() int {
	return len(g.names)
}
