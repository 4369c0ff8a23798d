// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/tomtom215/moviemate/internal/catalog"
)

func movieIDs(movies []catalog.Movie) []int {
	ids := make([]int, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	return ids
}

func TestListMovies(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	tests := []struct {
		name        string
		path        string
		wantIDs     []int
		wantTotal   int
		wantHasMore bool
	}{
		{
			name:        "default page",
			path:        "/api/v1/movies",
			wantIDs:     []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			wantTotal:   10,
			wantHasMore: false,
		},
		{
			name:        "limit and offset",
			path:        "/api/v1/movies?limit=2&offset=1",
			wantIDs:     []int{2, 3},
			wantTotal:   10,
			wantHasMore: true,
		},
		{
			name:        "offset past the end",
			path:        "/api/v1/movies?offset=50",
			wantIDs:     []int{},
			wantTotal:   10,
			wantHasMore: false,
		},
		{
			name:        "negative offset floors to zero",
			path:        "/api/v1/movies?offset=-3&limit=1",
			wantIDs:     []int{1},
			wantTotal:   10,
			wantHasMore: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := api.get(t, tt.path)

			var movies []catalog.Movie
			decodeData(t, rr, http.StatusOK, &movies)
			if got := movieIDs(movies); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("movie ids = %v, want %v", got, tt.wantIDs)
			}

			env := decodeEnvelope(t, rr)
			if env.Meta == nil || env.Meta.Pagination == nil {
				t.Fatal("pagination meta missing")
			}
			p := env.Meta.Pagination
			if p.Total != tt.wantTotal || p.HasMore != tt.wantHasMore {
				t.Errorf("pagination = %+v, want total %d hasMore %v", p, tt.wantTotal, tt.wantHasMore)
			}
			if p.Count != len(tt.wantIDs) {
				t.Errorf("pagination count = %d, want %d", p.Count, len(tt.wantIDs))
			}
		})
	}
}

func TestListMoviesGenreFilter(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	rr := api.get(t, "/api/v1/movies?genre=Animation")

	var movies []catalog.Movie
	decodeData(t, rr, http.StatusOK, &movies)
	if got := movieIDs(movies); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("movie ids = %v, want [1 3]", got)
	}

	// Filtered listings report only the returned page.
	env := decodeEnvelope(t, rr)
	if env.Meta.Pagination.Total != 0 || env.Meta.Pagination.Count != 2 {
		t.Errorf("pagination = %+v, want count 2 without total", env.Meta.Pagination)
	}
}

func TestGetMovie(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	t.Run("found", func(t *testing.T) {
		rr := api.get(t, "/api/v1/movies/3")

		var detail MovieDetail
		decodeData(t, rr, http.StatusOK, &detail)
		if detail.ID != 3 || detail.Title != "Balto" {
			t.Errorf("movie = %+v, want Balto (3)", detail.Movie)
		}
		if !reflect.DeepEqual(detail.Genres, []string{"Animation", "Adventure"}) {
			t.Errorf("genres = %v, want [Animation Adventure]", detail.Genres)
		}
		// Enrichment is offline in tests, so the metadata block is omitted.
		if detail.Metadata != nil {
			t.Errorf("metadata = %+v, want nil", detail.Metadata)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		assertErrorCode(t, api.get(t, "/api/v1/movies/999"), http.StatusNotFound, ErrCodeNotFound)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		assertErrorCode(t, api.get(t, "/api/v1/movies/abc"), http.StatusBadRequest, ErrCodeBadRequest)
	})
}

func TestSearchMovies(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	tests := []struct {
		name    string
		path    string
		wantIDs []int
	}{
		{name: "title match", path: "/api/v1/movies/search?q=toy", wantIDs: []int{1}},
		{name: "case insensitive", path: "/api/v1/movies/search?q=BALTO", wantIDs: []int{3}},
		{name: "no matches", path: "/api/v1/movies/search?q=zzz", wantIDs: []int{}},
		{name: "limit caps results", path: "/api/v1/movies/search?q=o&limit=2", wantIDs: []int{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var movies []catalog.Movie
			decodeData(t, api.get(t, tt.path), http.StatusOK, &movies)
			if got := movieIDs(movies); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("movie ids = %v, want %v", got, tt.wantIDs)
			}
		})
	}

	t.Run("missing query", func(t *testing.T) {
		assertErrorCode(t, api.get(t, "/api/v1/movies/search"), http.StatusBadRequest, ErrCodeValidationError)
	})

	t.Run("blank query", func(t *testing.T) {
		assertErrorCode(t, api.get(t, "/api/v1/movies/search?q=%20%20"), http.StatusBadRequest, ErrCodeValidationError)
	})
}

func TestRandomMovies(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)
	rr := api.get(t, "/api/v1/movies/random?count=3")

	var movies []catalog.Movie
	decodeData(t, rr, http.StatusOK, &movies)
	if len(movies) != 3 {
		t.Fatalf("len(movies) = %d, want 3", len(movies))
	}

	seen := make(map[int]bool)
	for _, m := range movies {
		if seen[m.ID] {
			t.Errorf("movie %d sampled twice", m.ID)
		}
		seen[m.ID] = true
	}

	// Asking for more than the catalog holds returns everything.
	var all []catalog.Movie
	decodeData(t, api.get(t, "/api/v1/movies/random?count=50"), http.StatusOK, &all)
	if len(all) != 10 {
		t.Errorf("len(movies) = %d, want 10", len(all))
	}
}

func TestMoviesByGenre(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	var movies []catalog.Movie
	decodeData(t, api.get(t, "/api/v1/movies/genre/Animation"), http.StatusOK, &movies)
	if got := movieIDs(movies); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("movie ids = %v, want [1 3]", got)
	}

	// Unknown genres are an empty listing, not an error.
	decodeData(t, api.get(t, "/api/v1/movies/genre/Western"), http.StatusOK, &movies)
	if len(movies) != 0 {
		t.Errorf("movies = %v, want empty", movies)
	}
}

func TestGenres(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	var genres []catalog.GenreCount
	decodeData(t, api.get(t, "/api/v1/genres"), http.StatusOK, &genres)

	if len(genres) != 11 {
		t.Fatalf("len(genres) = %d, want 11", len(genres))
	}
	for i := 1; i < len(genres); i++ {
		if genres[i-1].Name >= genres[i].Name {
			t.Errorf("genres out of order: %q before %q", genres[i-1].Name, genres[i].Name)
		}
	}
	for _, g := range genres {
		if g.Name == "Animation" && g.Count != 2 {
			t.Errorf("Animation count = %d, want 2", g.Count)
		}
	}
}

func TestMovieStreaming(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	var first, second StreamingResponse
	decodeData(t, api.get(t, "/api/v1/movies/1/streaming"), http.StatusOK, &first)
	decodeData(t, api.get(t, "/api/v1/movies/1/streaming"), http.StatusOK, &second)

	if first.MovieID != 1 || first.Title != "Toy Story" {
		t.Errorf("response = %+v, want movie 1 Toy Story", first)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("streaming differs across calls: %+v vs %+v", first, second)
	}
	for _, p := range first.Providers {
		if !p.Available {
			t.Errorf("provider %q listed but not available", p.Name)
		}
	}

	assertErrorCode(t, api.get(t, "/api/v1/movies/999/streaming"), http.StatusNotFound, ErrCodeNotFound)
}

func TestMovieTrivia(t *testing.T) {
	t.Parallel()

	api := newTestAPI(t)

	t.Run("genre and year question", func(t *testing.T) {
		var trivia TriviaResponse
		decodeData(t, api.get(t, "/api/v1/movies/1/trivia"), http.StatusOK, &trivia)

		want := "Which of these Animation, Comedy movies was released in 1995?"
		if trivia.Question != want {
			t.Errorf("question = %q, want %q", trivia.Question, want)
		}
		if trivia.MovieID != 1 || trivia.CorrectAnswer != "Toy Story" {
			t.Errorf("trivia = %+v, want movie 1 / Toy Story", trivia)
		}
		if len(trivia.Options) != 4 {
			t.Fatalf("len(options) = %d, want 4", len(trivia.Options))
		}
		found := false
		for _, o := range trivia.Options {
			if o == trivia.CorrectAnswer {
				found = true
			}
		}
		if !found {
			t.Errorf("options %v missing the correct answer", trivia.Options)
		}
	})

	t.Run("deterministic per movie", func(t *testing.T) {
		var first, second TriviaResponse
		decodeData(t, api.get(t, "/api/v1/movies/3/trivia"), http.StatusOK, &first)
		decodeData(t, api.get(t, "/api/v1/movies/3/trivia"), http.StatusOK, &second)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("trivia differs across calls: %+v vs %+v", first, second)
		}
	})

	t.Run("year question without genres", func(t *testing.T) {
		var trivia TriviaResponse
		decodeData(t, api.get(t, "/api/v1/movies/8/trivia"), http.StatusOK, &trivia)
		want := "Which of these movies was released in 2006?"
		if trivia.Question != want {
			t.Errorf("question = %q, want %q", trivia.Question, want)
		}
	})

	t.Run("genre question without year", func(t *testing.T) {
		var trivia TriviaResponse
		decodeData(t, api.get(t, "/api/v1/movies/10/trivia"), http.StatusOK, &trivia)
		want := "Which of these movies is tagged Documentary?"
		if trivia.Question != want {
			t.Errorf("question = %q, want %q", trivia.Question, want)
		}
		if trivia.CorrectAnswer != "Paris Is Burning" {
			t.Errorf("correct answer = %q, want Paris Is Burning", trivia.CorrectAnswer)
		}
	})

	t.Run("no year and no genres", func(t *testing.T) {
		assertErrorCode(t, api.get(t, "/api/v1/movies/9/trivia"), http.StatusUnprocessableEntity, ErrCodeInsufficientData)
	})

	t.Run("unknown movie", func(t *testing.T) {
		assertErrorCode(t, api.get(t, "/api/v1/movies/999/trivia"), http.StatusNotFound, ErrCodeNotFound)
	})
}
