package supabase

import (
	"context"
	"time"

	"github.com/creastat/circuits"
)

// HandleStore persists circuit handle entries in Supabase.
type HandleStore interface {
	circuits.Store[string]

	// Delete removes the row for key.
	Delete(ctx context.Context, key string) error

	// Close closes the Supabase client and releases resources
	Close() error
}

// HandleRow represents a circuit handle entry row in the database
type HandleRow struct {
	Key       string    `json:"key"`
	Entry     string    `json:"entry"`
	UpdatedAt time.Time `json:"updated_at"`
}
