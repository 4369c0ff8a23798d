// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package api

import (
	"net/http"
	"time"
)

// HealthResponse reports liveness and the catalog counters monitoring
// dashboards poll for.
type HealthResponse struct {
	Status          string `json:"status"`
	Version         string `json:"version,omitempty"`
	UptimeSeconds   int64  `json:"uptime_seconds"`
	Movies          int    `json:"movies"`
	Users           int    `json:"users"`
	Ratings         int    `json:"ratings"`
	MetadataEnabled bool   `json:"metadata_enabled"`
}

// Health returns service liveness. The catalog is loaded before the
// listener starts, so a reachable process is a healthy one; the counters
// exist to make an accidentally empty catalog visible.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	stats := h.store.Stats()
	rw.Success(HealthResponse{
		Status:          "healthy",
		Version:         h.version,
		UptimeSeconds:   int64(time.Since(h.startTime).Seconds()),
		Movies:          stats.Movies,
		Users:           stats.Users,
		Ratings:         stats.Ratings,
		MetadataEnabled: h.metadata.Enabled(),
	})
}
