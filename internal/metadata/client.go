// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/moviemate/internal/config"
	"github.com/tomtom215/moviemate/internal/metrics"
)

// ErrNotFound indicates the provider has no record for the requested title.
// It is a definitive answer from a healthy provider, not a transport failure.
var ErrNotFound = errors.New("metadata: movie not found")

// errRateLimited marks a request abandoned after exhausting HTTP 429 retries.
var errRateLimited = errors.New("metadata: provider rate limit exceeded")

const (
	defaultBaseURL = "https://www.omdbapi.com/"
	defaultTimeout = 10 * time.Second

	// Free-tier etiquette: the provider allows ~1000 requests/day, so keep
	// a conservative steady-state rate with a small burst for page loads.
	requestsPerSecond = rate.Limit(1)
	requestBurst      = 5

	maxRetries     = 5
	retryBaseDelay = 1 * time.Second

	// maxErrorBodySize limits how much of a failed response body is read
	// for error reporting, preventing unbounded allocation.
	maxErrorBodySize = 64 * 1024 // 64KB
)

// Enrichment holds provider metadata for one movie. The zero value means
// "no data": either the provider is disabled, the title is unknown to it,
// or the lookup failed and the response degraded gracefully.
type Enrichment struct {
	Title          string   `json:"title,omitempty"`
	PosterURL      string   `json:"poster_url,omitempty"`
	Plot           string   `json:"plot,omitempty"`
	Director       string   `json:"director,omitempty"`
	Actors         []string `json:"actors,omitempty"`
	RuntimeMinutes int      `json:"runtime_minutes,omitempty"`
	IMDbID         string   `json:"imdb_id,omitempty"`
	IMDbRating     float64  `json:"imdb_rating,omitempty"`
}

// IsZero reports whether the enrichment carries no provider data.
func (e Enrichment) IsZero() bool {
	return e.Title == "" && e.PosterURL == "" && e.Plot == "" &&
		e.Director == "" && len(e.Actors) == 0 && e.RuntimeMinutes == 0 &&
		e.IMDbID == "" && e.IMDbRating == 0
}

// Client talks to an OMDb-compatible metadata API.
//
// Resilience features:
//   - Per-request timeout from configuration (default 10s)
//   - Token-bucket rate limiting (1 req/s, burst 5)
//   - Automatic retry on HTTP 429 with exponential backoff
//     (1s, 2s, 4s, 8s, 16s), honoring Retry-After when present
//
// Thread Safety: safe for concurrent use. Each request creates its own
// HTTP request; the limiter serializes token acquisition internally.
type Client struct {
	baseURL        string
	apiKey         string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int           // Maximum retries for rate limiting
	retryBaseDelay time.Duration // Base delay for exponential backoff
}

// NewClient creates a metadata API client from the provided configuration.
func NewClient(cfg config.MetadataConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: timeout,
		},
		limiter:        rate.NewLimiter(requestsPerSecond, requestBurst),
		maxRetries:     maxRetries,
		retryBaseDelay: retryBaseDelay,
	}
}

// Lookup fetches metadata for a movie by title and release year. A year
// of 0 omits the year filter. Returns ErrNotFound when the provider has
// no matching record.
func (c *Client) Lookup(ctx context.Context, title string, year int) (*Enrichment, error) {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("t", title)
	params.Set("type", "movie")
	params.Set("plot", "full")
	if year > 0 {
		params.Set("y", strconv.Itoa(year))
	}

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	start := time.Now()
	enrichment, reason, err := c.lookup(ctx, reqURL)
	metrics.RecordMetadataAPICall(time.Since(start), reason)
	if err != nil {
		return nil, err
	}
	return enrichment, nil
}

// lookup performs the request and returns the enrichment plus a metrics
// failure reason ("" on success or a definitive not-found).
func (c *Client) lookup(ctx context.Context, reqURL string) (*Enrichment, string, error) {
	resp, err := c.doRequestWithRetry(ctx, reqURL)
	if err != nil {
		return nil, classifyTransportError(err), err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return nil, "http_error", fmt.Errorf("metadata request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var lr lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return nil, "decode", fmt.Errorf("failed to decode metadata response: %w", err)
	}

	if lr.Response != "True" {
		if lr.Error != "" {
			return nil, "", fmt.Errorf("%w: %s", ErrNotFound, lr.Error)
		}
		return nil, "", ErrNotFound
	}

	return lr.enrichment(), "", nil
}

// doRequestWithRetry performs an HTTP GET with rate limiting and automatic
// HTTP 429 handling. Each attempt first acquires a limiter token, then
// backs off exponentially on 429 (1s, 2s, 4s, 8s, 16s); a Retry-After
// header overrides the computed delay. The context cancels both the
// limiter wait and the backoff wait.
func (c *Client) doRequestWithRetry(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		// Success - return response
		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Rate limited (HTTP 429) - close body and retry with backoff
		_ = resp.Body.Close()

		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("%w after %d retries (HTTP 429)", errRateLimited, c.maxRetries)
			break
		}

		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))

		// Check for Retry-After header (RFC 6585)
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			// Try parsing as seconds (integer)
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				delay = seconds
			}
		}

		// Use cancellable wait instead of time.Sleep
		select {
		case <-time.After(delay):
			// Continue to next attempt
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// classifyTransportError maps a request error to a metrics failure reason.
// Caller-side cancellation is not counted as a provider failure.
func classifyTransportError(err error) string {
	switch {
	case errors.Is(err, errRateLimited):
		return "rate_limited"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return ""
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	return "http_error"
}

// readBodyForError reads the response body for error reporting (max 64KB).
// Returns the body content or a placeholder message if reading fails.
func readBodyForError(r io.Reader) []byte {
	limitedReader := io.LimitReader(r, maxErrorBodySize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// lookupResponse mirrors the provider's JSON shape. String fields use the
// placeholder "N/A" for missing data; enrichment() normalizes those away.
type lookupResponse struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Runtime    string `json:"Runtime"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	Actors     string `json:"Actors"`
	Plot       string `json:"Plot"`
	Poster     string `json:"Poster"`
	IMDbRating string `json:"imdbRating"`
	IMDbID     string `json:"imdbID"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// enrichment converts the raw provider response into an Enrichment,
// dropping "N/A" placeholders and parsing numeric fields.
func (r *lookupResponse) enrichment() *Enrichment {
	e := &Enrichment{
		Title:     field(r.Title),
		PosterURL: field(r.Poster),
		Plot:      field(r.Plot),
		Director:  field(r.Director),
		IMDbID:    field(r.IMDbID),
	}

	if v := field(r.IMDbRating); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			e.IMDbRating = f
		}
	}

	// Runtime arrives as "142 min"
	if v := field(r.Runtime); v != "" {
		if parts := strings.Fields(v); len(parts) > 0 {
			if n, err := strconv.Atoi(parts[0]); err == nil {
				e.RuntimeMinutes = n
			}
		}
	}

	if v := field(r.Actors); v != "" {
		for _, a := range strings.Split(v, ",") {
			if name := strings.TrimSpace(a); name != "" {
				e.Actors = append(e.Actors, name)
			}
		}
	}

	return e
}

// field normalizes the provider's "N/A" placeholder to an empty string.
func field(v string) string {
	if v == "N/A" {
		return ""
	}
	return v
}
