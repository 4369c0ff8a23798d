// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/moviemate/internal/logging"
)

func TestRequestIDGeneratesWhenAbsent(t *testing.T) {
	var seenInContext string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenInContext = logging.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	echoed := rec.Header().Get(HeaderRequestID)
	if echoed == "" {
		t.Fatal("response X-Request-ID is empty, want a generated ID")
	}
	if seenInContext != echoed {
		t.Errorf("context request ID = %q, response header = %q, want identical", seenInContext, echoed)
	}
}

func TestRequestIDKeepsUpstreamID(t *testing.T) {
	const upstream = "proxy-assigned-7f3a"

	var seenInContext string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenInContext = logging.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, upstream)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(HeaderRequestID); got != upstream {
		t.Errorf("response X-Request-ID = %q, want %q", got, upstream)
	}
	if seenInContext != upstream {
		t.Errorf("context request ID = %q, want %q", seenInContext, upstream)
	}
}
