// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadMovies reads a MovieLens-style movies CSV. Two layouts are accepted,
// detected from the header row:
//
//	movieId,title,genres            pipe-separated genre list per row
//	movieId,title,Action,Comedy,... one-hot genre flag columns (0/1)
//
// Titles carrying a "(1995)" release-year suffix have the year split into
// Movie.Year. Malformed rows abort the load; the catalog is a startup
// dependency and a partial load would silently skew every recommendation.
func LoadMovies(path string) ([]Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open movies file: %w", err)
	}
	defer f.Close()

	movies, err := ParseMovies(f)
	if err != nil {
		return nil, fmt.Errorf("parse movies file %s: %w", path, err)
	}
	return movies, nil
}

// ParseMovies parses movies CSV content. See LoadMovies for the layouts.
func ParseMovies(r io.Reader) ([]Movie, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	normalizeHeader(header)

	idCol := columnIndex(header, "movieid")
	titleCol := columnIndex(header, "title")
	if idCol < 0 || titleCol < 0 {
		return nil, fmt.Errorf("header must contain movieId and title columns, got %v", header)
	}

	genresCol := columnIndex(header, "genres")

	// With no genres column, every remaining column is a one-hot genre flag.
	var flagCols []int
	if genresCol < 0 {
		for i := range header {
			if i != idCol && i != titleCol {
				flagCols = append(flagCols, i)
			}
		}
	}

	var movies []Movie
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) <= idCol || len(record) <= titleCol {
			return nil, fmt.Errorf("line %d: expected at least %d columns, got %d", line, max(idCol, titleCol)+1, len(record))
		}

		id, err := strconv.Atoi(strings.TrimSpace(record[idCol]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid movieId %q", line, record[idCol])
		}

		title, year := splitTitleYear(record[titleCol])

		var genres []string
		if genresCol >= 0 {
			if genresCol < len(record) {
				genres = splitGenres(record[genresCol])
			}
		} else {
			for _, col := range flagCols {
				if col >= len(record) {
					continue
				}
				if strings.TrimSpace(record[col]) == "1" {
					genres = append(genres, header[col])
				}
			}
		}

		movies = append(movies, Movie{
			ID:     id,
			Title:  title,
			Year:   year,
			Genres: genres,
		})
	}

	return movies, nil
}

// LoadRatings reads a MovieLens-style ratings CSV with header
// userId,movieId,rating[,timestamp]. Timestamps are Unix seconds and
// optional. Malformed rows abort the load.
func LoadRatings(path string) ([]Rating, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ratings file: %w", err)
	}
	defer f.Close()

	ratings, err := ParseRatings(f)
	if err != nil {
		return nil, fmt.Errorf("parse ratings file %s: %w", path, err)
	}
	return ratings, nil
}

// ParseRatings parses ratings CSV content. See LoadRatings for the layout.
func ParseRatings(r io.Reader) ([]Rating, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	normalizeHeader(header)

	userCol := columnIndex(header, "userid")
	movieCol := columnIndex(header, "movieid")
	ratingCol := columnIndex(header, "rating")
	if userCol < 0 || movieCol < 0 || ratingCol < 0 {
		return nil, fmt.Errorf("header must contain userId, movieId and rating columns, got %v", header)
	}
	tsCol := columnIndex(header, "timestamp")

	var ratings []Rating
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) <= userCol || len(record) <= movieCol || len(record) <= ratingCol {
			return nil, fmt.Errorf("line %d: expected at least %d columns, got %d",
				line, max(userCol, movieCol, ratingCol)+1, len(record))
		}

		userID, err := strconv.Atoi(strings.TrimSpace(record[userCol]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid userId %q", line, record[userCol])
		}
		movieID, err := strconv.Atoi(strings.TrimSpace(record[movieCol]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid movieId %q", line, record[movieCol])
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[ratingCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid rating %q", line, record[ratingCol])
		}

		var ts time.Time
		if tsCol >= 0 && tsCol < len(record) {
			secs, err := strconv.ParseInt(strings.TrimSpace(record[tsCol]), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid timestamp %q", line, record[tsCol])
			}
			ts = time.Unix(secs, 0).UTC()
		}

		ratings = append(ratings, Rating{
			UserID:    userID,
			MovieID:   movieID,
			Value:     value,
			Timestamp: ts,
		})
	}

	return ratings, nil
}

// normalizeHeader strips a UTF-8 BOM and surrounding whitespace in place.
func normalizeHeader(header []string) {
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\uFEFF"))
	}
}

// columnIndex returns the position of the named column, case-insensitive,
// or -1 when absent.
func columnIndex(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

// splitTitleYear splits "Toy Story (1995)" into its name and release year.
// Titles without a parseable "(dddd)" suffix keep year 0.
func splitTitleYear(raw string) (string, int) {
	title := strings.TrimSpace(raw)
	if len(title) < 7 || !strings.HasSuffix(title, ")") {
		return title, 0
	}

	open := strings.LastIndex(title, "(")
	if open < 0 {
		return title, 0
	}

	year, err := strconv.Atoi(title[open+1 : len(title)-1])
	if err != nil || year < 1850 || year > 2100 {
		return title, 0
	}

	return strings.TrimSpace(title[:open]), year
}

// splitGenres splits a pipe-separated genre list, dropping empty entries
// and untagged-placeholder markers.
func splitGenres(raw string) []string {
	var genres []string
	for _, g := range strings.Split(raw, "|") {
		g = strings.TrimSpace(g)
		if g == "" || IsNoGenreMarker(g) {
			continue
		}
		genres = append(genres, g)
	}
	return genres
}
