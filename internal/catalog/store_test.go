// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package catalog

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"
	"time"
)

func fixtureMovies() []Movie {
	return []Movie{
		{ID: 1, Title: "Toy Story", Year: 1995, Genres: []string{"Adventure", "Animation", "Children", "Comedy", "Fantasy"}},
		{ID: 2, Title: "Jumanji", Year: 1995, Genres: []string{"Adventure", "Children", "Fantasy"}},
		{ID: 3, Title: "Grumpier Old Men", Year: 1995, Genres: []string{"Comedy", "Romance"}},
		{ID: 13, Title: "Balto", Year: 1995, Genres: []string{"Adventure", "Animation", "Children"}},
	}
}

func fixtureRatings() []Rating {
	return []Rating{
		{UserID: 1, MovieID: 1, Value: 5.0},
		{UserID: 1, MovieID: 2, Value: 4.0},
		{UserID: 2, MovieID: 1, Value: 4.5},
		{UserID: 2, MovieID: 2, Value: 3.5},
		{UserID: 2, MovieID: 3, Value: 2.0},
		{UserID: 3, MovieID: 3, Value: 4.0},
	}
}

func newFixtureStore(t *testing.T) *Store {
	t.Helper()

	s := NewStoreWithSeed(42)
	skipped, err := Bootstrap(s, fixtureMovies(), fixtureRatings())
	if err != nil {
		t.Fatalf("Bootstrap error: %v", err)
	}
	if skipped != 0 {
		t.Fatalf("Bootstrap skipped %d ratings, want 0", skipped)
	}
	return s
}

func movieIDs(movies []Movie) []int {
	ids := make([]int, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	return ids
}

func TestBootstrapSkipsDanglingRatings(t *testing.T) {
	t.Parallel()

	s := NewStoreWithSeed(1)
	ratings := append(fixtureRatings(), Rating{UserID: 9, MovieID: 999, Value: 3.0})

	skipped, err := Bootstrap(s, fixtureMovies(), ratings)
	if err != nil {
		t.Fatalf("Bootstrap error: %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if got := s.Stats().Ratings; got != 6 {
		t.Errorf("Stats().Ratings = %d, want 6", got)
	}
}

func TestBootstrapLastWriteWins(t *testing.T) {
	t.Parallel()

	s := NewStoreWithSeed(1)
	ratings := []Rating{
		{UserID: 1, MovieID: 1, Value: 2.0},
		{UserID: 1, MovieID: 1, Value: 5.0},
	}

	if _, err := Bootstrap(s, fixtureMovies(), ratings); err != nil {
		t.Fatalf("Bootstrap error: %v", err)
	}

	got, err := s.UserRatings(1)
	if err != nil {
		t.Fatalf("UserRatings error: %v", err)
	}
	if len(got) != 1 || got[0].Value != 5.0 {
		t.Errorf("UserRatings(1) = %+v, want single rating 5.0", got)
	}
	if s.Stats().Ratings != 1 {
		t.Errorf("Stats().Ratings = %d, want 1", s.Stats().Ratings)
	}
}

func TestBootstrapRejectsOutOfRangeRating(t *testing.T) {
	t.Parallel()

	s := NewStoreWithSeed(1)
	ratings := []Rating{{UserID: 1, MovieID: 1, Value: 6.0}}

	if _, err := Bootstrap(s, fixtureMovies(), ratings); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("Bootstrap error = %v, want ErrInvalidRating", err)
	}
}

func TestAddMovie(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)
	genBefore := s.CatalogGeneration()

	err := s.AddMovie(Movie{ID: 50, Title: "The Usual Suspects", Year: 1995, Genres: []string{"Crime", "Mystery", "Thriller"}})
	if err != nil {
		t.Fatalf("AddMovie error: %v", err)
	}
	if s.CatalogGeneration() != genBefore+1 {
		t.Errorf("CatalogGeneration = %d, want %d", s.CatalogGeneration(), genBefore+1)
	}

	if err := s.AddMovie(Movie{ID: 1, Title: "Duplicate"}); !errors.Is(err, ErrDuplicateMovie) {
		t.Errorf("duplicate AddMovie error = %v, want ErrDuplicateMovie", err)
	}
	if err := s.AddMovie(Movie{ID: 0, Title: "Bad ID"}); err == nil {
		t.Error("AddMovie with id 0 succeeded, want error")
	}
}

func TestMovieLookup(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)

	m, err := s.Movie(2)
	if err != nil {
		t.Fatalf("Movie(2) error: %v", err)
	}
	if m.Title != "Jumanji" || m.Year != 1995 {
		t.Errorf("Movie(2) = %+v, want Jumanji (1995)", m)
	}

	if _, err := s.Movie(404); !errors.Is(err, ErrMovieNotFound) {
		t.Errorf("Movie(404) error = %v, want ErrMovieNotFound", err)
	}
}

func TestGenreVector(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)
	if err := s.AddMovie(Movie{ID: 99, Title: "Untagged", Genres: []string{"(no genres listed)"}}); err != nil {
		t.Fatalf("AddMovie error: %v", err)
	}

	// Vocabulary in first-seen order: Adventure, Animation, Children,
	// Comedy, Fantasy, Romance.
	tests := []struct {
		name    string
		movieID int
		want    []float64
	}{
		{"all but romance", 1, []float64{1, 1, 1, 1, 1, 0}},
		{"sparse", 3, []float64{0, 0, 0, 1, 0, 1}},
		{"untagged yields zero vector", 99, []float64{0, 0, 0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := s.GenreVector(tt.movieID)
			if err != nil {
				t.Fatalf("GenreVector(%d) error: %v", tt.movieID, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenreVector(%d) = %v, want %v", tt.movieID, got, tt.want)
			}
		})
	}

	t.Run("unknown movie", func(t *testing.T) {
		t.Parallel()
		if _, err := s.GenreVector(404); !errors.Is(err, ErrMovieNotFound) {
			t.Errorf("GenreVector(404) error = %v, want ErrMovieNotFound", err)
		}
	})
}

func TestMoviesPagination(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)

	tests := []struct {
		name      string
		offset    int
		limit     int
		wantIDs   []int
		wantTotal int
	}{
		{"first page", 0, 2, []int{1, 2}, 4},
		{"second page", 2, 2, []int{3, 13}, 4},
		{"offset past end", 10, 2, []int{}, 4},
		{"no limit", 0, 0, []int{1, 2, 3, 13}, 4},
		{"negative offset", -5, 3, []int{1, 2, 3}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			page, total := s.Movies(tt.offset, tt.limit)
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if got := movieIDs(page); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("page IDs = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)

	tests := []struct {
		name    string
		query   string
		limit   int
		wantIDs []int
	}{
		{"case insensitive", "toy STORY", 0, []int{1}},
		{"substring", "um", 0, []int{2, 3}},
		{"limit applies", "um", 1, []int{2}},
		{"no match", "zzz", 0, []int{}},
		{"empty query returns all", "", 0, []int{1, 2, 3, 13}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := movieIDs(s.Search(tt.query, tt.limit))
			if !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("Search(%q, %d) = %v, want %v", tt.query, tt.limit, got, tt.wantIDs)
			}
		})
	}
}

func TestByGenre(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)

	tests := []struct {
		name    string
		genre   string
		limit   int
		wantIDs []int
	}{
		{"adventure ascending", "Adventure", 0, []int{1, 2, 13}},
		{"case insensitive", "adventure", 0, []int{1, 2, 13}},
		{"limit applies", "Adventure", 2, []int{1, 2}},
		{"romance", "Romance", 0, []int{3}},
		{"unknown genre", "Documentary", 0, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := movieIDs(s.ByGenre(tt.genre, tt.limit))
			if !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("ByGenre(%q, %d) = %v, want %v", tt.genre, tt.limit, got, tt.wantIDs)
			}
		})
	}
}

func TestRandom(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)

	sample := s.Random(2)
	if len(sample) != 2 {
		t.Fatalf("len(Random(2)) = %d, want 2", len(sample))
	}
	if sample[0].ID == sample[1].ID {
		t.Error("Random(2) returned the same movie twice")
	}

	if got := s.Random(100); len(got) != 4 {
		t.Errorf("len(Random(100)) = %d, want 4 (clamped to catalog size)", len(got))
	}
	if got := s.Random(0); len(got) != 0 {
		t.Errorf("len(Random(0)) = %d, want 0", len(got))
	}
}

func TestGenres(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)

	want := []GenreCount{
		{Name: "Adventure", Count: 3},
		{Name: "Animation", Count: 2},
		{Name: "Children", Count: 3},
		{Name: "Comedy", Count: 2},
		{Name: "Fantasy", Count: 2},
		{Name: "Romance", Count: 1},
	}
	if got := s.Genres(); !reflect.DeepEqual(got, want) {
		t.Errorf("Genres() = %v, want %v", got, want)
	}
}

func TestAddRating(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)
	genBefore := s.Generation()

	created, err := s.AddRating(3, 1, 4.0, time.Time{})
	if err != nil {
		t.Fatalf("AddRating error: %v", err)
	}
	if !created {
		t.Error("created = false for a new (user, movie) pair, want true")
	}
	if s.Generation() != genBefore+1 {
		t.Errorf("Generation = %d, want %d", s.Generation(), genBefore+1)
	}

	// Re-rating the same movie replaces the value and still bumps the
	// generation so cached recommendations are invalidated.
	created, err = s.AddRating(3, 1, 1.5, time.Time{})
	if err != nil {
		t.Fatalf("AddRating upsert error: %v", err)
	}
	if created {
		t.Error("created = true on upsert, want false")
	}
	if s.Generation() != genBefore+2 {
		t.Errorf("Generation after upsert = %d, want %d", s.Generation(), genBefore+2)
	}

	got, err := s.UserRatings(3)
	if err != nil {
		t.Fatalf("UserRatings error: %v", err)
	}
	if len(got) != 2 || got[0].MovieID != 1 || got[0].Value != 1.5 {
		t.Errorf("UserRatings(3) = %+v, want movie 1 at 1.5 then movie 3", got)
	}
}

func TestAddRatingValidation(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)

	tests := []struct {
		name    string
		movieID int
		value   float64
		wantErr error
	}{
		{"below range", 1, 0.4, ErrInvalidRating},
		{"above range", 1, 5.5, ErrInvalidRating},
		{"unknown movie", 777, 3.0, ErrMovieNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := s.AddRating(1, tt.movieID, tt.value, time.Time{}); !errors.Is(err, tt.wantErr) {
				t.Errorf("AddRating error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRemoveRating(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)
	genBefore := s.Generation()

	if err := s.RemoveRating(3, 3); err != nil {
		t.Fatalf("RemoveRating error: %v", err)
	}
	if s.Generation() != genBefore+1 {
		t.Errorf("Generation = %d, want %d", s.Generation(), genBefore+1)
	}

	// User 3 only had one rating, so the user is gone too.
	if _, err := s.UserRatings(3); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UserRatings(3) error = %v, want ErrUserNotFound", err)
	}

	if err := s.RemoveRating(3, 3); !errors.Is(err, ErrRatingNotFound) {
		t.Errorf("second RemoveRating error = %v, want ErrRatingNotFound", err)
	}
	if err := s.RemoveRating(1, 13); !errors.Is(err, ErrRatingNotFound) {
		t.Errorf("RemoveRating(unrated movie) error = %v, want ErrRatingNotFound", err)
	}
}

func TestUserRatingsSorted(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)

	got, err := s.UserRatings(2)
	if err != nil {
		t.Fatalf("UserRatings error: %v", err)
	}
	wantOrder := []int{1, 2, 3}
	for i, r := range got {
		if r.MovieID != wantOrder[i] {
			t.Errorf("ratings[%d].MovieID = %d, want %d", i, r.MovieID, wantOrder[i])
		}
	}

	if _, err := s.UserRatings(99); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UserRatings(99) error = %v, want ErrUserNotFound", err)
	}
}

func TestUserProfile(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)

	profile, err := s.UserProfile(2)
	if err != nil {
		t.Fatalf("UserProfile error: %v", err)
	}

	if profile.RatingCount != 3 {
		t.Errorf("RatingCount = %d, want 3", profile.RatingCount)
	}
	if wantMean := 10.0 / 3.0; math.Abs(profile.MeanRating-wantMean) > 1e-9 {
		t.Errorf("MeanRating = %g, want %g", profile.MeanRating, wantMean)
	}

	// Only movies rated at or above the liked threshold count: Toy Story
	// (4.5) and Jumanji (3.5); Grumpier Old Men at 2.0 does not.
	want := []GenreCount{
		{Name: "Adventure", Count: 2},
		{Name: "Children", Count: 2},
		{Name: "Fantasy", Count: 2},
		{Name: "Animation", Count: 1},
		{Name: "Comedy", Count: 1},
	}
	if !reflect.DeepEqual(profile.TopGenres, want) {
		t.Errorf("TopGenres = %v, want %v", profile.TopGenres, want)
	}
}

func TestStats(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)

	stats := s.Stats()
	if stats.Movies != 4 || stats.Users != 3 || stats.Ratings != 6 {
		t.Errorf("Stats = %+v, want 4 movies, 3 users, 6 ratings", stats)
	}
	wantMean := (5.0 + 4.0 + 4.5 + 3.5 + 2.0 + 4.0) / 6.0
	if math.Abs(stats.MeanRating-wantMean) > 1e-9 {
		t.Errorf("MeanRating = %g, want %g", stats.MeanRating, wantMean)
	}
	if stats.Generation != 1 {
		t.Errorf("Generation = %d, want 1 after bootstrap", stats.Generation)
	}
}

func TestGenerationIndependence(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)
	matrixGen := s.Generation()
	catalogGen := s.CatalogGeneration()

	if _, err := s.AddRating(1, 3, 3.0, time.Time{}); err != nil {
		t.Fatalf("AddRating error: %v", err)
	}
	if s.Generation() != matrixGen+1 {
		t.Errorf("Generation = %d, want %d after rating write", s.Generation(), matrixGen+1)
	}
	if s.CatalogGeneration() != catalogGen {
		t.Errorf("CatalogGeneration = %d, want unchanged %d after rating write", s.CatalogGeneration(), catalogGen)
	}

	if err := s.AddMovie(Movie{ID: 60, Title: "Eraser", Year: 1996, Genres: []string{"Action"}}); err != nil {
		t.Fatalf("AddMovie error: %v", err)
	}
	if s.CatalogGeneration() != catalogGen+1 {
		t.Errorf("CatalogGeneration = %d, want %d after movie insert", s.CatalogGeneration(), catalogGen+1)
	}
	if s.Generation() != matrixGen+1 {
		t.Errorf("Generation = %d, want unchanged %d after movie insert", s.Generation(), matrixGen+1)
	}
}

func TestViewTxn(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)

	s.View(func(tx Txn) {
		if got := tx.MovieCount(); got != 4 {
			t.Errorf("MovieCount = %d, want 4", got)
		}
		if got := tx.UserCount(); got != 3 {
			t.Errorf("UserCount = %d, want 3", got)
		}
		if got := tx.GenreVocabSize(); got != 6 {
			t.Errorf("GenreVocabSize = %d, want 6", got)
		}
		if got := tx.Generation(); got != s.Generation() {
			t.Errorf("Generation = %d, want %d", got, s.Generation())
		}

		var order []int
		tx.EachMovie(func(m *Movie) bool {
			order = append(order, m.ID)
			return true
		})
		if want := []int{1, 2, 3, 13}; !reflect.DeepEqual(order, want) {
			t.Errorf("EachMovie order = %v, want %v", order, want)
		}

		raters := tx.MovieRaters(1)
		if len(raters) != 2 || raters[1] != 5.0 || raters[2] != 4.5 {
			t.Errorf("MovieRaters(1) = %v, want users 1 and 2", raters)
		}
		if tx.MovieRaters(13) != nil {
			t.Errorf("MovieRaters(13) = %v, want nil for unrated movie", tx.MovieRaters(13))
		}

		row := tx.UserRatings(3)
		if len(row) != 1 || row[3] != 4.0 {
			t.Errorf("UserRatings(3) = %v, want movie 3 at 4.0", row)
		}

		users := 0
		tx.EachUser(func(int, map[int]float64) bool {
			users++
			return users < 2 // early stop is honored
		})
		if users != 2 {
			t.Errorf("EachUser visited %d users after early stop, want 2", users)
		}
	})
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	t.Parallel()

	s := newFixtureStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			if _, err := s.AddRating(100+n, 1, 3.0, time.Time{}); err != nil {
				t.Errorf("AddRating error: %v", err)
			}
		}(i)
		go func() {
			defer wg.Done()
			s.View(func(tx Txn) {
				tx.MovieRaters(1)
				tx.Generation()
			})
			_ = s.Stats()
		}()
	}
	wg.Wait()

	if got := s.Stats().Ratings; got != 14 {
		t.Errorf("Stats().Ratings = %d, want 14 after 8 concurrent writes", got)
	}
	if got := s.Generation(); got != 9 {
		t.Errorf("Generation = %d, want 9 after 8 writes on generation 1", got)
	}
}
