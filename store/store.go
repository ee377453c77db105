// Package store provides bounded, insertion-ordered in-memory stores shared
// across allocation runs. Capacity overflow evicts the oldest entry.
package store

import "sync"

// Store maps keys to values up to a fixed capacity. Inserting beyond
// capacity evicts entries in insertion order, oldest first. Updating an
// existing key keeps its original position. Safe for concurrent use.
type Store[K comparable, V any] struct {
	mu       sync.RWMutex
	capacity int
	entries  map[K]V
	order    []K
}

func New[K comparable, V any](capacity int) *Store[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Store[K, V]{
		capacity: capacity,
		entries:  make(map[K]V, capacity),
	}
}

// Put inserts or updates an entry, evicting the oldest entries while the
// store exceeds capacity.
func (s *Store[K, V]) Put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; ok {
		s.entries[key] = value
		return
	}

	s.entries[key] = value
	s.order = append(s.order, key)
	for len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
	}
}

// Get returns the value for key and whether it is present.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// Delete removes an entry. Returns false if the key was absent.
func (s *Store[K, V]) Delete(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of stored entries.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Values returns a snapshot of all values in insertion order.
func (s *Store[K, V]) Values() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]V, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.entries[k])
	}
	return out
}
