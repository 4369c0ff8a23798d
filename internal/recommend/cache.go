// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package recommend

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry holds one memoized ranked result.
type cacheEntry struct {
	result    *Result
	expiresAt time.Time
}

// resultCache memoizes full ranked results and deduplicates concurrent
// identical computations with a single-flight group. Invalidation is by
// key construction: rating writes bump the matrix generation, so stale
// entries are simply never addressed again and age out by TTL.
type resultCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry

	ttl        time.Duration
	maxEntries int

	group singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

func newResultCache(ttl time.Duration, maxEntries int) *resultCache {
	return &resultCache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// do returns the memoized result for key or computes and stores it. N
// simultaneous callers with the same key trigger exactly one computation;
// the rest share its result. A caller canceled via ctx abandons its wait
// without disturbing the computation or the other waiters. Errors are
// returned to every waiter and never cached.
func (c *resultCache) do(ctx context.Context, key string, compute func() (*Result, error)) (*Result, error) {
	if cached := c.lookup(key); cached != nil {
		c.hits.Add(1)
		return cached, nil
	}
	c.misses.Add(1)

	ch := c.group.DoChan(key, func() (any, error) {
		// A completed flight may have filled the entry between our miss
		// and this callback.
		if cached := c.lookup(key); cached != nil {
			return cached, nil
		}
		result, err := compute()
		if err != nil {
			return nil, err
		}
		c.store(key, result)
		return result, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Result), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// lookup returns a copy of the live entry for key, or nil when absent or
// expired. The copy carries CacheHit and shares no mutable state with the
// stored result.
func (c *resultCache) lookup(key string) *Result {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil
	}

	items := make([]Scored, len(entry.result.Items))
	copy(items, entry.result.Items)
	return &Result{
		Kind:       entry.result.Kind,
		Items:      items,
		Generation: entry.result.Generation,
		CacheHit:   true,
	}
}

// store memoizes a computed result. The capacity is a soft cap: reaching
// it sweeps expired entries but never refuses the insert.
func (c *resultCache) store(key string, result *Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.evictExpiredLocked()
	}
	c.entries[key] = cacheEntry{
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// evictExpiredLocked removes expired entries. Must be called with mu held.
func (c *resultCache) evictExpiredLocked() {
	now := time.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
}

// snapshot returns hit and miss counts and the current entry count.
func (c *resultCache) snapshot() (hits, misses int64, entries int) {
	c.mu.RLock()
	entries = len(c.entries)
	c.mu.RUnlock()
	return c.hits.Load(), c.misses.Load(), entries
}

// contentKey omits the rating generation: genre vectors only change when
// the movie set does, so rating churn must not orphan content entries.
func contentKey(movieID, k int, catalogGen uint64) string {
	return fmt.Sprintf("content:%d:%d:c%d", movieID, k, catalogGen)
}

// collabKey binds the entry to the rating matrix generation.
func collabKey(userID, k int, gen uint64) string {
	return fmt.Sprintf("collab:%d:%d:g%d", userID, k, gen)
}

// hybridKey encodes the blend weight by its exact bit pattern so that
// distinct weights can never collide on a formatted decimal.
func hybridKey(movieID, userID, k int, weight float64, gen, catalogGen uint64) string {
	w := strconv.FormatUint(math.Float64bits(weight), 16)
	return fmt.Sprintf("hybrid:%d:%d:%d:w%s:g%d:c%d", movieID, userID, k, w, gen, catalogGen)
}
