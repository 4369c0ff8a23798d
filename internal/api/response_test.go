// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/moviemate/internal/logging"
)

func TestResponseWriterSuccess(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	NewResponseWriter(rr, req).Success(map[string]string{"hello": "world"})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusOK)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type = %q, want application/json; charset=utf-8", ct)
	}

	env := decodeEnvelope(t, rr)
	if !env.Success {
		t.Error("Success = false, want true")
	}
	if env.Error != nil {
		t.Errorf("Error = %+v, want nil", env.Error)
	}
	if env.Meta == nil || env.Meta.Timestamp.IsZero() {
		t.Error("Meta.Timestamp missing")
	}

	var data map[string]string
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data["hello"] != "world" {
		t.Errorf("data = %v, want hello=world", data)
	}
}

func TestResponseWriterErrorVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		write      func(rw *ResponseWriter)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "bad request",
			write:      func(rw *ResponseWriter) { rw.BadRequest("bad") },
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeBadRequest,
		},
		{
			name:       "not found",
			write:      func(rw *ResponseWriter) { rw.NotFound("gone") },
			wantStatus: http.StatusNotFound,
			wantCode:   ErrCodeNotFound,
		},
		{
			name:       "validation",
			write:      func(rw *ResponseWriter) { rw.ValidationError("invalid", map[string]string{"field": "oops"}) },
			wantStatus: http.StatusBadRequest,
			wantCode:   ErrCodeValidationError,
		},
		{
			name:       "insufficient data",
			write:      func(rw *ResponseWriter) { rw.InsufficientData("cold start") },
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   ErrCodeInsufficientData,
		},
		{
			name:       "too many requests",
			write:      func(rw *ResponseWriter) { rw.TooManyRequests("slow down") },
			wantStatus: http.StatusTooManyRequests,
			wantCode:   ErrCodeTooManyRequests,
		},
		{
			name:       "internal",
			write:      func(rw *ResponseWriter) { rw.InternalError("boom") },
			wantStatus: http.StatusInternalServerError,
			wantCode:   ErrCodeInternalError,
		},
		{
			name:       "unavailable",
			write:      func(rw *ResponseWriter) { rw.ServiceUnavailable("later") },
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   ErrCodeServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			tt.write(NewResponseWriter(rr, req))

			assertErrorCode(t, rr, tt.wantStatus, tt.wantCode)
		})
	}
}

func TestResponseWriterCreatedAndNoContent(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)
	NewResponseWriter(rr, req).Created(map[string]int{"id": 7})
	decodeData(t, rr, http.StatusCreated, nil)

	rr = httptest.NewRecorder()
	NewResponseWriter(rr, req).NoContent()
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", rr.Body.String())
	}
}

func TestResponseWriterRequestIDPropagation(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(logging.ContextWithRequestID(req.Context(), "req-123"))

	rr := httptest.NewRecorder()
	NewResponseWriter(rr, req).NotFound("missing")

	env := decodeEnvelope(t, rr)
	if env.Error == nil || env.Error.RequestID != "req-123" {
		t.Errorf("Error.RequestID = %+v, want req-123", env.Error)
	}
	if env.Meta == nil || env.Meta.RequestID != "req-123" {
		t.Errorf("Meta.RequestID = %+v, want req-123", env.Meta)
	}
}

func TestSuccessWithPagination(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	NewResponseWriter(rr, req).SuccessWithPagination([]int{1, 2}, &PaginationMeta{
		Total:   10,
		Count:   2,
		Offset:  4,
		Limit:   2,
		HasMore: true,
	})

	env := decodeEnvelope(t, rr)
	if env.Meta == nil || env.Meta.Pagination == nil {
		t.Fatal("Meta.Pagination missing")
	}
	p := env.Meta.Pagination
	if p.Total != 10 || p.Count != 2 || p.Offset != 4 || p.Limit != 2 || !p.HasMore {
		t.Errorf("Pagination = %+v, want {10 2 4 2 true}", p)
	}
}
