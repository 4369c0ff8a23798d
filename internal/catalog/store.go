// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package catalog

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
)

// Store is the in-memory catalog and rating matrix.
//
// Concurrency model: one RWMutex guards everything. Point lookups take the
// read lock per call. Engines that need a consistent multi-step read (user
// vectors plus transpose plus generation) run inside View. Rating writes are
// the only mutation path after bootstrap; each write patches the sparse
// matrix and its transpose in place and increments the matrix generation,
// which keys the recommendation cache.
type Store struct {
	mu sync.RWMutex

	movies      map[int]*Movie
	movieIDs    []int // ascending, for deterministic iteration
	genres      *genreIndex
	genreCounts map[string]int // canonical genre name -> movie count

	userRatings  map[int]map[int]float64 // userID -> movieID -> value
	movieRatings map[int]map[int]float64 // movieID -> userID -> value (transpose)
	ratedAt      map[int]map[int]time.Time

	ratingCount int
	ratingSum   float64

	generation uint64 // bumped on every rating mutation
	catalogGen uint64 // bumped when the movie set changes

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewStore creates an empty store.
func NewStore() *Store {
	return NewStoreWithSeed(time.Now().UnixNano())
}

// NewStoreWithSeed creates an empty store with a deterministic random source,
// for reproducible Random selections in tests.
func NewStoreWithSeed(seed int64) *Store {
	return &Store{
		movies:       make(map[int]*Movie),
		genres:       newGenreIndex(),
		genreCounts:  make(map[string]int),
		userRatings:  make(map[int]map[int]float64),
		movieRatings: make(map[int]map[int]float64),
		ratedAt:      make(map[int]map[int]time.Time),
		rng:          rand.New(rand.NewSource(seed)), //nolint:gosec // math/rand is fine for sampling movies
	}
}

// Bootstrap loads movies and ratings in bulk under a single lock. Ratings
// referencing unknown movies are skipped and counted rather than failing the
// load; trimmed catalog exports routinely carry dangling rating rows. For
// duplicate (user, movie) pairs the last row wins. Returns the number of
// skipped ratings.
func Bootstrap(s *Store, movies []Movie, ratings []Rating) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range movies {
		if err := s.addMovieLocked(movies[i]); err != nil {
			return 0, fmt.Errorf("movie %d: %w", movies[i].ID, err)
		}
	}

	skipped := 0
	for _, r := range ratings {
		if _, ok := s.movies[r.MovieID]; !ok {
			skipped++
			continue
		}
		if r.Value < MinRatingValue || r.Value > MaxRatingValue {
			return skipped, fmt.Errorf("rating %g for user %d movie %d: %w",
				r.Value, r.UserID, r.MovieID, ErrInvalidRating)
		}
		s.setRatingLocked(r.UserID, r.MovieID, r.Value, r.Timestamp)
	}

	// Bulk load counts as one change.
	s.generation = 1
	s.catalogGen = 1
	return skipped, nil
}

// AddMovie registers a movie. IDs must be unique.
func (s *Store) AddMovie(m Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.addMovieLocked(m); err != nil {
		return err
	}
	s.catalogGen++
	return nil
}

func (s *Store) addMovieLocked(m Movie) error {
	if m.ID <= 0 {
		return fmt.Errorf("movie id must be positive, got %d", m.ID)
	}
	if _, exists := s.movies[m.ID]; exists {
		return ErrDuplicateMovie
	}

	mask, err := s.genres.maskOf(m.Genres)
	if err != nil {
		return err
	}
	m.GenreMask = mask

	// Keep canonical spellings so ByGenre lookups and display agree.
	canonical := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		if name, ok := s.genres.canonical(g); ok {
			canonical = append(canonical, name)
			s.genreCounts[name]++
		}
	}
	m.Genres = canonical

	s.movies[m.ID] = &m

	pos := sort.SearchInts(s.movieIDs, m.ID)
	s.movieIDs = append(s.movieIDs, 0)
	copy(s.movieIDs[pos+1:], s.movieIDs[pos:])
	s.movieIDs[pos] = m.ID

	return nil
}

// Movie returns the catalog entry for id.
func (s *Store) Movie(id int) (Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.movies[id]
	if !ok {
		return Movie{}, ErrMovieNotFound
	}
	return *m, nil
}

// GenreVector returns the movie's one-hot genre vector, unpacked from its
// mask to the full vocabulary width. Every movie's vector has the same
// length; an untagged movie gets the zero vector. Unknown ids return
// ErrMovieNotFound.
func (s *Store) GenreVector(id int) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.movies[id]
	if !ok {
		return nil, ErrMovieNotFound
	}
	vec := make([]float64, s.genres.size())
	for bit := range vec {
		if m.GenreMask&(1<<uint(bit)) != 0 {
			vec[bit] = 1
		}
	}
	return vec, nil
}

// Movies returns a page of the catalog in ascending ID order along with the
// total count.
func (s *Store) Movies(offset, limit int) ([]Movie, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.movieIDs)
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []Movie{}, total
	}
	end := total
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}

	page := make([]Movie, 0, end-offset)
	for _, id := range s.movieIDs[offset:end] {
		page = append(page, *s.movies[id])
	}
	return page, total
}

// Search returns movies whose title contains the query, case-insensitive,
// in ascending ID order. A limit of 0 or less returns all matches. An empty
// result is a valid answer, not an error.
func (s *Store) Search(query string, limit int) []Movie {
	needle := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []Movie
	for _, id := range s.movieIDs {
		m := s.movies[id]
		if needle != "" && !strings.Contains(strings.ToLower(m.Title), needle) {
			continue
		}
		matches = append(matches, *m)
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	if matches == nil {
		matches = []Movie{}
	}
	return matches
}

// ByGenre returns movies tagged with the genre, in ascending ID order.
// Unknown genres yield an empty slice.
func (s *Store) ByGenre(genre string, limit int) []Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bit, ok := s.genres.bit(strings.TrimSpace(genre))
	if !ok {
		return []Movie{}
	}
	mask := uint64(1) << uint(bit)

	var matches []Movie
	for _, id := range s.movieIDs {
		m := s.movies[id]
		if m.GenreMask&mask == 0 {
			continue
		}
		matches = append(matches, *m)
		if limit > 0 && len(matches) >= limit {
			break
		}
	}
	if matches == nil {
		matches = []Movie{}
	}
	return matches
}

// Random returns up to n distinct movies sampled uniformly.
func (s *Store) Random(n int) []Movie {
	if n <= 0 {
		return []Movie{}
	}

	s.mu.RLock()
	ids := make([]int, len(s.movieIDs))
	copy(ids, s.movieIDs)
	s.mu.RUnlock()

	if n > len(ids) {
		n = len(ids)
	}

	s.rngMu.Lock()
	// Partial Fisher-Yates: the first n positions become the sample.
	for i := 0; i < n; i++ {
		j := i + s.rng.Intn(len(ids)-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	s.rngMu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	sample := make([]Movie, 0, n)
	for _, id := range ids[:n] {
		if m, ok := s.movies[id]; ok {
			sample = append(sample, *m)
		}
	}
	return sample
}

// Genres returns every known genre with its movie count, sorted by name.
func (s *Store) Genres() []GenreCount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make([]GenreCount, 0, len(s.genreCounts))
	for name, count := range s.genreCounts {
		counts = append(counts, GenreCount{Name: name, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Name < counts[j].Name })
	return counts
}

// AddRating inserts or replaces the rating for (userID, movieID). The write
// is last-write-wins and bumps the matrix generation either way. Returns
// true when the pair was new.
func (s *Store) AddRating(userID, movieID int, value float64, at time.Time) (bool, error) {
	if value < MinRatingValue || value > MaxRatingValue {
		return false, ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.movies[movieID]; !ok {
		return false, ErrMovieNotFound
	}

	if at.IsZero() {
		at = time.Now().UTC()
	}

	created := s.setRatingLocked(userID, movieID, value, at)
	s.generation++
	return created, nil
}

// setRatingLocked writes one rating into the matrix and transpose.
// Must be called with mu held for writing.
func (s *Store) setRatingLocked(userID, movieID int, value float64, at time.Time) bool {
	userRow := s.userRatings[userID]
	if userRow == nil {
		userRow = make(map[int]float64)
		s.userRatings[userID] = userRow
		s.ratedAt[userID] = make(map[int]time.Time)
	}

	old, existed := userRow[movieID]
	userRow[movieID] = value
	s.ratedAt[userID][movieID] = at

	movieCol := s.movieRatings[movieID]
	if movieCol == nil {
		movieCol = make(map[int]float64)
		s.movieRatings[movieID] = movieCol
	}
	movieCol[userID] = value

	if existed {
		s.ratingSum += value - old
		return false
	}
	s.ratingCount++
	s.ratingSum += value
	return true
}

// RemoveRating deletes the rating for (userID, movieID) and bumps the
// matrix generation.
func (s *Store) RemoveRating(userID, movieID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userRow, ok := s.userRatings[userID]
	if !ok {
		return ErrRatingNotFound
	}
	value, ok := userRow[movieID]
	if !ok {
		return ErrRatingNotFound
	}

	delete(userRow, movieID)
	delete(s.ratedAt[userID], movieID)
	if len(userRow) == 0 {
		delete(s.userRatings, userID)
		delete(s.ratedAt, userID)
	}

	if col := s.movieRatings[movieID]; col != nil {
		delete(col, userID)
		if len(col) == 0 {
			delete(s.movieRatings, movieID)
		}
	}

	s.ratingCount--
	s.ratingSum -= value
	s.generation++
	return nil
}

// UserRatings returns all ratings by the user, sorted by movie ID.
func (s *Store) UserRatings(userID int) ([]Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userRow, ok := s.userRatings[userID]
	if !ok {
		return nil, ErrUserNotFound
	}

	ratings := make([]Rating, 0, len(userRow))
	for movieID, value := range userRow {
		ratings = append(ratings, Rating{
			UserID:    userID,
			MovieID:   movieID,
			Value:     value,
			Timestamp: s.ratedAt[userID][movieID],
		})
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].MovieID < ratings[j].MovieID })
	return ratings, nil
}

// UserProfile summarizes the user's rating activity. Top genres count the
// genres of movies the user rated at or above the liked threshold.
func (s *Store) UserProfile(userID int) (UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userRow, ok := s.userRatings[userID]
	if !ok {
		return UserProfile{}, ErrUserNotFound
	}

	profile := UserProfile{UserID: userID, RatingCount: len(userRow)}

	var sum float64
	genreTally := make(map[string]int)
	for movieID, value := range userRow {
		sum += value
		if value < likedThreshold {
			continue
		}
		if m, ok := s.movies[movieID]; ok {
			for _, g := range m.Genres {
				genreTally[g]++
			}
		}
	}
	if len(userRow) > 0 {
		profile.MeanRating = sum / float64(len(userRow))
	}

	top := make([]GenreCount, 0, len(genreTally))
	for name, count := range genreTally {
		top = append(top, GenreCount{Name: name, Count: count})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > topGenreLimit {
		top = top[:topGenreLimit]
	}
	profile.TopGenres = top

	return profile, nil
}

// Stats returns a snapshot of store-wide counters.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Movies:     len(s.movies),
		Users:      len(s.userRatings),
		Ratings:    s.ratingCount,
		Generation: s.generation,
	}
	if s.ratingCount > 0 {
		stats.MeanRating = s.ratingSum / float64(s.ratingCount)
	}

	stats.Genres = make([]GenreCount, 0, len(s.genreCounts))
	for name, count := range s.genreCounts {
		stats.Genres = append(stats.Genres, GenreCount{Name: name, Count: count})
	}
	sort.Slice(stats.Genres, func(i, j int) bool { return stats.Genres[i].Name < stats.Genres[j].Name })

	return stats
}

// Generation returns the rating matrix generation. It changes on every
// rating mutation and keys collaborative and hybrid cache entries.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// CatalogGeneration returns the movie set generation. It keys content cache
// entries and is unaffected by rating writes.
func (s *Store) CatalogGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalogGen
}

// View runs fn under the read lock with direct access to the matrix.
// Engines use it to keep a whole query consistent against concurrent
// writes. Everything the Txn hands out (maps, movie pointers) is only
// valid inside fn and must not be mutated or retained.
func (s *Store) View(fn func(tx Txn)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(Txn{s: s})
}

// Txn is a read-only view of the store, valid for the duration of the View
// closure that produced it.
type Txn struct {
	s *Store
}

// UserRatings returns the user's rating row, or nil for unknown users.
func (tx Txn) UserRatings(userID int) map[int]float64 {
	return tx.s.userRatings[userID]
}

// MovieRaters returns the transpose column for a movie: every user that
// rated it, or nil when unrated.
func (tx Txn) MovieRaters(movieID int) map[int]float64 {
	return tx.s.movieRatings[movieID]
}

// EachUser calls fn for every user with at least one rating until fn
// returns false. Iteration order is unspecified.
func (tx Txn) EachUser(fn func(userID int, ratings map[int]float64) bool) {
	for userID, ratings := range tx.s.userRatings {
		if !fn(userID, ratings) {
			return
		}
	}
}

// Movie returns the catalog entry for id.
func (tx Txn) Movie(id int) (*Movie, bool) {
	m, ok := tx.s.movies[id]
	return m, ok
}

// EachMovie calls fn for every movie in ascending ID order until fn
// returns false.
func (tx Txn) EachMovie(fn func(m *Movie) bool) {
	for _, id := range tx.s.movieIDs {
		if !fn(tx.s.movies[id]) {
			return
		}
	}
}

// MovieCount returns the catalog size.
func (tx Txn) MovieCount() int {
	return len(tx.s.movies)
}

// UserCount returns the number of users with ratings.
func (tx Txn) UserCount() int {
	return len(tx.s.userRatings)
}

// GenreVocabSize returns the number of distinct genres seen by the store,
// which is the dimension of the one-hot genre vectors.
func (tx Txn) GenreVocabSize() int {
	return tx.s.genres.size()
}

// Generation returns the rating matrix generation at view time.
func (tx Txn) Generation() uint64 {
	return tx.s.generation
}
