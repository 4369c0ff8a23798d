// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moviemate/internal/arena"
	"github.com/tomtom215/moviemate/internal/catalog"
	"github.com/tomtom215/moviemate/internal/config"
	"github.com/tomtom215/moviemate/internal/metadata"
	"github.com/tomtom215/moviemate/internal/recommend"
)

// testAPI is a fully wired API over a small fixed catalog, with rate
// limiting disabled and metadata enrichment in its offline state.
type testAPI struct {
	store   *catalog.Store
	battles *arena.Arena
	srv     http.Handler
}

// testCatalog builds the fixture store.
//
// Users 1 and 2 agree on movies 1 and 2; user 3 dissents on movie 1 and
// has rated nothing else. Movie 8 has a year but no genres, movie 9 has
// neither and movie 10 has genres but no year, exercising the trivia
// fallbacks.
func testCatalog(t *testing.T) *catalog.Store {
	t.Helper()

	movies := []catalog.Movie{
		{ID: 1, Title: "Toy Story", Year: 1995, Genres: []string{"Animation", "Comedy"}},
		{ID: 2, Title: "Jumanji", Year: 1995, Genres: []string{"Adventure", "Fantasy"}},
		{ID: 3, Title: "Balto", Year: 1995, Genres: []string{"Animation", "Adventure"}},
		{ID: 4, Title: "Heat", Year: 1995, Genres: []string{"Action", "Thriller"}},
		{ID: 5, Title: "The Godfather", Year: 1972, Genres: []string{"Drama"}},
		{ID: 6, Title: "Alien", Year: 1979, Genres: []string{"Horror", "Sci-Fi"}},
		{ID: 7, Title: "Her", Year: 2013, Genres: []string{"Romance", "Drama"}},
		{ID: 8, Title: "Death Note: Desu noto", Year: 2006},
		{ID: 9, Title: "Home Movie"},
		{ID: 10, Title: "Paris Is Burning", Genres: []string{"Documentary"}},
	}
	ratings := []catalog.Rating{
		{UserID: 1, MovieID: 1, Value: 5},
		{UserID: 1, MovieID: 2, Value: 4},
		{UserID: 2, MovieID: 1, Value: 5},
		{UserID: 2, MovieID: 2, Value: 5},
		{UserID: 2, MovieID: 3, Value: 4},
		{UserID: 3, MovieID: 1, Value: 1},
	}

	store := catalog.NewStoreWithSeed(42)
	if _, err := catalog.Bootstrap(store, movies, ratings); err != nil {
		t.Fatalf("Bootstrap() error = %v", err)
	}
	return store
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	mwConfig := DefaultChiMiddlewareConfig()
	mwConfig.RateLimitDisabled = true
	return newTestAPIWith(t, mwConfig)
}

// newTestAPIWith wires the fixture catalog behind a router built from the
// given middleware configuration.
func newTestAPIWith(t *testing.T, mwConfig *ChiMiddlewareConfig) *testAPI {
	t.Helper()

	store := testCatalog(t)

	engine, err := recommend.NewEngine(store, recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	meta, err := metadata.New(config.MetadataConfig{})
	if err != nil {
		t.Fatalf("metadata.New() error = %v", err)
	}

	battles := arena.NewSized(64, time.Hour)

	cfg := &config.Config{
		API: config.APIConfig{DefaultPageSize: 20, MaxPageSize: 100},
		Engine: config.EngineConfig{
			NeighborK:     10,
			MinRatings:    1,
			DefaultK:      10,
			MaxK:          50,
			Similarity:    "cosine",
			ContentWeight: 0.6,
		},
	}

	handler := NewHandler(store, engine, meta, battles, cfg, "test")
	router := NewRouter(handler, NewChiMiddleware(mwConfig))

	return &testAPI{
		store:   store,
		battles: battles,
		srv:     router.Setup(),
	}
}

func (a *testAPI) do(t *testing.T, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	a.srv.ServeHTTP(rr, req)
	return rr
}

func (a *testAPI) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	return a.do(t, http.MethodGet, path, nil)
}

func (a *testAPI) postJSON(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	return a.do(t, http.MethodPost, path, bytes.NewReader(raw))
}

// testEnvelope mirrors APIResponse with the payload left raw so each
// test can decode it into its own type.
type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) testEnvelope {
	t.Helper()

	var env testEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rr.Body.String())
	}
	return env
}

// decodeData asserts a successful envelope with the given status and
// unmarshals its payload into v.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int, v interface{}) {
	t.Helper()

	if rr.Code != wantStatus {
		t.Fatalf("status = %d, want %d (body %q)", rr.Code, wantStatus, rr.Body.String())
	}
	env := decodeEnvelope(t, rr)
	if !env.Success {
		t.Fatalf("Success = false, want true (body %q)", rr.Body.String())
	}
	if env.Error != nil {
		t.Fatalf("Error = %+v, want nil", env.Error)
	}
	if v != nil {
		if err := json.Unmarshal(env.Data, v); err != nil {
			t.Fatalf("decode data: %v (data %q)", err, string(env.Data))
		}
	}
}

// assertErrorCode asserts a failed envelope with the given status and
// error code.
func assertErrorCode(t *testing.T, rr *httptest.ResponseRecorder, wantStatus int, wantCode string) {
	t.Helper()

	if rr.Code != wantStatus {
		t.Fatalf("status = %d, want %d (body %q)", rr.Code, wantStatus, rr.Body.String())
	}
	env := decodeEnvelope(t, rr)
	if env.Success {
		t.Fatalf("Success = true, want false (body %q)", rr.Body.String())
	}
	if env.Error == nil {
		t.Fatalf("Error = nil, want code %q", wantCode)
	}
	if env.Error.Code != wantCode {
		t.Errorf("Error.Code = %q, want %q (message %q)", env.Error.Code, wantCode, env.Error.Message)
	}
}
