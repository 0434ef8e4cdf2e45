package circuits

import "context"

// Map is an unsynchronised Store backed by a Go map.
// Callers sharing a Map across goroutines must lock around it.
type Map[K comparable] map[K]Entry

// Load implements Store.
func (m Map[K]) Load(_ context.Context, key K) (Entry, bool, error) {
	entry, ok := m[key]
	return entry, ok, nil
}

// Save implements Store.
func (m Map[K]) Save(_ context.Context, key K, entry Entry) error {
	m[key] = entry
	return nil
}

var _ Store[string] = Map[string](nil)
