// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package metadata

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/moviemate/internal/logging"
	"github.com/tomtom215/moviemate/internal/metrics"
)

// lookupClient abstracts the provider client so the breaker wrapper and
// test fakes can stand in for the real HTTP client.
type lookupClient interface {
	Lookup(ctx context.Context, title string, year int) (*Enrichment, error)
}

// BreakerClient wraps a metadata client with a circuit breaker so a slow
// or failing provider cannot exhaust handler goroutines with timed-out
// calls. A definitive ErrNotFound counts as a healthy provider answer and
// never contributes to tripping the breaker.
//
// DETERMINISM NOTE: the breaker uses real time (via sony/gobreaker) for
// its interval and timeout calculations. Tests exercise the trip and
// recovery logic through a stub client rather than mocking the clock.
type BreakerClient struct {
	client lookupClient
	cb     *gobreaker.CircuitBreaker[*Enrichment]
	name   string
}

// breakerName labels breaker metrics and log lines.
const breakerName = "metadata-api"

// NewBreakerClient creates a circuit-breaking wrapper around client.
//
// Breaker configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens at a 60% failure rate with a minimum of 10 requests
func NewBreakerClient(client lookupClient) *BreakerClient {
	// Initialize breaker state metrics (0 = closed)
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[*Enrichment](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,               // Allow 3 concurrent requests in half-open state
		Interval:    time.Minute,     // Reset counts after 1 minute in closed state
		Timeout:     2 * time.Minute, // Wait 2 minutes before transitioning from open to half-open

		// ReadyToTrip opens the circuit at >= 60% failures with a minimum
		// of 10 requests for statistical significance.
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening metadata circuit")
			}

			return shouldTrip
		},

		// A not-found answer proves the provider is up and responding.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNotFound)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.RecordBreakerTransition(name, fromStr, toStr, stateToInt(to))
		},
	})

	return &BreakerClient{
		client: client,
		cb:     cb,
		name:   breakerName,
	}
}

// Lookup fetches metadata through the circuit breaker. When the circuit
// is open the provider is not contacted at all and the call fails fast.
func (b *BreakerClient) Lookup(ctx context.Context, title string, year int) (*Enrichment, error) {
	result, err := b.cb.Execute(func() (*Enrichment, error) {
		return b.client.Lookup(ctx, title, year)
	})

	switch {
	case err == nil:
		metrics.RecordBreakerResult(b.name, "success")
		return result, nil

	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		// Circuit is open or too many concurrent probes in half-open state
		metrics.RecordBreakerResult(b.name, "rejected")
		metrics.MetadataAPIErrors.WithLabelValues("breaker_open").Inc()
		return nil, fmt.Errorf("metadata provider unavailable: %w", err)

	case errors.Is(err, ErrNotFound):
		// The provider answered; there is simply no record.
		metrics.RecordBreakerResult(b.name, "success")
		return nil, err

	default:
		metrics.RecordBreakerResult(b.name, "failure")
		return nil, err
	}
}

// State exposes the current breaker state for health reporting.
func (b *BreakerClient) State() string {
	return stateToString(b.cb.State())
}

// stateToInt converts a breaker state to the numeric gauge value.
func stateToInt(state gobreaker.State) int {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts a breaker state to a string for logs and labels.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Compile-time interface assertions
var (
	_ lookupClient = (*Client)(nil)
	_ lookupClient = (*BreakerClient)(nil)
)
