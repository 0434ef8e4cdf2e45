package store

import (
	"context"

	"github.com/creastat/circuits"
)

// Store is a circuit handle store keyed by connection token.
type Store interface {
	circuits.Store[string]

	// Delete removes the entry for key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close closes the store and releases any resources.
	Close() error
}
