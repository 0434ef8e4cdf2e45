package store

import (
	"context"
	"sync"

	"github.com/creastat/circuits"
)

// MemoryStore implements circuits.Store using an in-memory map guarded by
// a read/write mutex. It is safe for concurrent use.
type MemoryStore[K comparable] struct {
	mu      sync.RWMutex
	entries map[K]circuits.Entry
}

// NewMemoryStore creates a new in-memory handle store.
func NewMemoryStore[K comparable]() *MemoryStore[K] {
	return &MemoryStore[K]{
		entries: make(map[K]circuits.Entry),
	}
}

// Load implements circuits.Store.
// Returns false if the key is not found (not an error).
func (s *MemoryStore[K]) Load(ctx context.Context, key K) (circuits.Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.entries == nil {
		return circuits.Entry{}, false, circuits.ErrStoreClosed
	}
	entry, exists := s.entries[key]
	return entry, exists, nil
}

// Save implements circuits.Store.
func (s *MemoryStore[K]) Save(ctx context.Context, key K, entry circuits.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		return circuits.ErrStoreClosed
	}
	s.entries[key] = entry
	return nil
}

// Delete removes the entry for key.
func (s *MemoryStore[K]) Delete(ctx context.Context, key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries == nil {
		return circuits.ErrStoreClosed
	}
	delete(s.entries, key)
	return nil
}

// Len returns the number of stored keys, including cleared ones.
func (s *MemoryStore[K]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close drops all entries. Later operations return circuits.ErrStoreClosed.
func (s *MemoryStore[K]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	return nil
}

var _ Store = (*MemoryStore[string])(nil)
