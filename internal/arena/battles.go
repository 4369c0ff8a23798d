// MovieMate - Movie Recommendation Engine and Catalog API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moviemate

package arena

import "time"

// battleEntry is a node in the battle store's recency list.
type battleEntry struct {
	battle    Battle
	prev      *battleEntry
	next      *battleEntry
	expiresAt time.Time
}

// battleStore holds open battles with a capacity bound and TTL so
// abandoned matchups age out instead of accumulating for the process
// lifetime. It combines a hashmap for O(1) lookup with a doubly-linked
// recency list for O(1) eviction; votes refresh recency, keeping active
// battles alive under pressure.
//
// The store does no locking of its own; the owning Arena serializes all
// access under one mutex so a vote's battle update and leaderboard update
// stay atomic together.
type battleStore struct {
	capacity int
	ttl      time.Duration

	// items maps battle ids to list nodes for O(1) lookup
	items map[string]*battleEntry

	// head and tail are sentinel nodes for the doubly-linked list
	// head.next is the most recently used, tail.prev is the least recently used
	head *battleEntry
	tail *battleEntry
}

func newBattleStore(capacity int, ttl time.Duration) *battleStore {
	s := &battleStore{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*battleEntry, capacity),
		head:     &battleEntry{},
		tail:     &battleEntry{},
	}

	// Initialize linked list sentinels
	s.head.next = s.tail
	s.tail.prev = s.head

	return s
}

// add inserts a new battle at the front, evicting the least recently
// used battles when over capacity.
func (s *battleStore) add(b Battle) {
	entry := &battleEntry{
		battle:    b,
		expiresAt: time.Now().Add(s.ttl),
	}

	s.addToFront(entry)
	s.items[b.ID] = entry

	for len(s.items) > s.capacity {
		s.evictOldest()
	}
}

// get returns the live entry for a battle id, dropping it and reporting
// a miss when it has expired. Found entries move to the front.
func (s *battleStore) get(id string) *battleEntry {
	entry, exists := s.items[id]
	if !exists {
		return nil
	}

	if time.Now().After(entry.expiresAt) {
		s.removeEntry(entry)
		return nil
	}

	s.moveToFront(entry)
	return entry
}

// len counts stored battles, expired ones included until touched or swept.
func (s *battleStore) len() int {
	return len(s.items)
}

// cleanupExpired removes all expired battles, returning how many were
// dropped. Walks from the tail (least recently used) toward the head.
func (s *battleStore) cleanupExpired() int {
	now := time.Now()
	removed := 0

	for entry := s.tail.prev; entry != s.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			s.removeEntry(entry)
			removed++
		}
		entry = prev
	}

	return removed
}

// addToFront adds an entry to the front of the list (most recently used).
func (s *battleStore) addToFront(entry *battleEntry) {
	entry.prev = s.head
	entry.next = s.head.next
	s.head.next.prev = entry
	s.head.next = entry
}

// moveToFront moves an existing entry to the front of the list.
func (s *battleStore) moveToFront(entry *battleEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev

	s.addToFront(entry)
}

// removeEntry removes an entry from both the list and the map.
func (s *battleStore) removeEntry(entry *battleEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev

	delete(s.items, entry.battle.ID)
}

// evictOldest removes the least recently used entry.
func (s *battleStore) evictOldest() {
	oldest := s.tail.prev
	if oldest == s.head {
		return // List is empty
	}
	s.removeEntry(oldest)
}
