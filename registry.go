// Package circuits maps connection keys to handles of live UI circuits so a
// circuit can be re-attached after a transport reconnect.
package circuits

import (
	"context"
	"fmt"
)

// Store is a caller-owned mapping from keys to handle entries.
//
// The registry functions below hold no state of their own; lifetime,
// persistence and synchronisation of the mapping belong to the Store.
type Store[K comparable] interface {
	// Load returns the entry stored under key.
	// Returns false if the key was never set (not an error).
	Load(ctx context.Context, key K) (Entry, bool, error)

	// Save stores entry under key, overwriting any previous entry.
	Save(ctx context.Context, key K, entry Entry) error
}

// Lookup returns the raw entry under key. Use it when "never set",
// "explicitly cleared" and "handle without a live circuit" must be told
// apart.
func Lookup[K comparable](ctx context.Context, s Store[K], key K) (Entry, bool, error) {
	return s.Load(ctx, key)
}

// GetHandle returns the handle stored under key.
// Returns nil if the key is missing or explicitly cleared.
func GetHandle[K comparable](ctx context.Context, s Store[K], key K) (*Handle, error) {
	entry, ok, err := s.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok || entry.IsAbsent() {
		return nil, nil
	}
	h, isHandle := entry.Handle()
	if !isHandle {
		return nil, fmt.Errorf("%w: key %v", ErrInvalidHandleEntry, key)
	}
	return h, nil
}

// GetCircuit returns the circuit reachable through the handle stored
// under key. Returns nil if the key is missing, cleared, or its handle no
// longer references a live circuit.
func GetCircuit[K comparable](ctx context.Context, s Store[K], key K) (*Circuit, error) {
	h, err := GetHandle(ctx, s, key)
	if err != nil {
		return nil, err
	}
	return h.Circuit(), nil
}

// SetCircuit stores circuit's handle under key, or Absent when circuit is
// nil. Any previous entry is overwritten.
func SetCircuit[K comparable](ctx context.Context, s Store[K], key K, circuit *Circuit) error {
	if circuit == nil {
		return s.Save(ctx, key, Absent())
	}
	return s.Save(ctx, key, HandleEntry(circuit.Handle()))
}
