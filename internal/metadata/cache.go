// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package metadata

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Enrichment cache key prefix for namespacing in BadgerDB.
const enrichmentKeyPrefix = "enrich:"

// Cache stores successful provider lookups in BadgerDB, keyed by movie id
// with a TTL so stale posters and ratings age out on their own. Without a
// configured directory it runs fully in memory; with one it persists
// across restarts, which matters for free-tier API quotas.
type Cache struct {
	db  *badger.DB
	ttl time.Duration
}

// OpenCache opens the enrichment cache. An empty dir selects BadgerDB's
// in-memory mode.
func OpenCache(dir string, ttl time.Duration) (*Cache, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
		// Value log sized for small JSON documents (default is 1GB)
		opts.ValueLogFileSize = 16 << 20 // 16MB
	}
	opts.Logger = nil // Suppress BadgerDB internal logs

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open metadata cache: %w", err)
	}

	return &Cache{db: db, ttl: ttl}, nil
}

// Get returns the cached enrichment for a movie, or false on a miss.
// Decode failures are treated as misses; the entry will be overwritten by
// the next successful lookup.
func (c *Cache) Get(movieID int) (*Enrichment, bool) {
	var e Enrichment

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(cacheKey(movieID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &e)
		})
	})
	if err != nil {
		return nil, false
	}

	return &e, true
}

// Put stores an enrichment with the cache TTL.
func (c *Cache) Put(movieID int, e *Enrichment) error {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal enrichment: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(cacheKey(movieID), data)
		if c.ttl > 0 {
			entry = entry.WithTTL(c.ttl)
		}
		return txn.SetEntry(entry)
	})
}

// Delete removes a cached enrichment. Deleting an absent key is a no-op.
func (c *Cache) Delete(movieID int) error {
	return c.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(cacheKey(movieID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}

// Len counts the cached entries, expired ones included until BadgerDB
// drops them.
func (c *Cache) Len() (int, error) {
	count := 0

	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(enrichmentKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})

	return count, err
}

// RunGC runs one BadgerDB value log garbage collection cycle to reclaim
// space from expired entries. BadgerDB reports ErrNoRewrite when there is
// nothing to collect and ErrGCInMemoryMode when no value log exists;
// neither is a failure.
func (c *Cache) RunGC() error {
	err := c.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrGCInMemoryMode) {
		return nil
	}
	return err
}

// Close closes the underlying BadgerDB.
func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func cacheKey(movieID int) []byte {
	return []byte(enrichmentKeyPrefix + strconv.Itoa(movieID))
}
