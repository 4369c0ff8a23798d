// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package middleware

import (
	"net/http"

	"github.com/tomtom215/moviemate/internal/logging"
)

// HeaderRequestID carries the request ID between client and server.
const HeaderRequestID = "X-Request-ID"

// RequestID assigns every request a unique ID and threads it through the
// logging context, so logging.Ctx(ctx) tags every line of the request with
// it. An ID supplied by an upstream proxy is kept; the ID is always echoed
// back in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set(HeaderRequestID, requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
