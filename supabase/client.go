package supabase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/creastat/circuits"
	"github.com/supabase-community/supabase-go"
)

const defaultTable = "circuit_handles"

// Config holds Supabase connection configuration
type Config struct {
	URL    string
	APIKey string
	// Table defaults to "circuit_handles".
	Table string
	// Directory resolves stored handle IDs to local handles. Required.
	Directory *circuits.Directory
	// CacheTTL keeps encoded entries in memory after a read or write.
	// Zero disables caching.
	CacheTTL time.Duration
}

// Client implements HandleStore using a Supabase table with columns
// key (primary key), entry and updated_at.
//
// Save registers handles in the configured directory; Delete and clearing
// a key leave them registered, since other keys may share a handle.
// Callers unregister a handle when its circuit is torn down, or the
// directory grows with every circuit ever saved.
type Client struct {
	client    *supabase.Client
	table     string
	directory *circuits.Directory
	cache     *cache
	cacheTTL  time.Duration
	now       func() time.Time
}

// cache provides thread-safe caching of encoded entries by key
type cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// New creates a new Supabase handle store
func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("%w: supabase URL is required", circuits.ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: supabase API key is required", circuits.ErrInvalidConfig)
	}
	if cfg.Directory == nil {
		return nil, fmt.Errorf("%w: circuit directory is required", circuits.ErrInvalidConfig)
	}
	if cfg.Table == "" {
		cfg.Table = defaultTable
	}

	client, err := supabase.NewClient(cfg.URL, cfg.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		client:    client,
		table:     cfg.Table,
		directory: cfg.Directory,
		cacheTTL:  cfg.CacheTTL,
		cache:     &cache{entries: make(map[string]cacheEntry)},
		now:       time.Now,
	}, nil
}

// Load implements circuits.Store.
// Returns false if no row exists for key (not an error).
func (c *Client) Load(ctx context.Context, key string) (circuits.Entry, bool, error) {
	if value, ok := c.getFromCache(key); ok {
		entry, err := circuits.DecodeEntry(value, c.directory)
		return entry, true, err
	}

	var rows []HandleRow
	_, err := c.client.From(c.table).
		Select("*", "", false).
		Eq("key", key).
		ExecuteTo(&rows)
	if err != nil {
		return circuits.Entry{}, false, fmt.Errorf("failed to get circuit entry: %w", err)
	}

	if len(rows) == 0 {
		return circuits.Entry{}, false, nil
	}

	c.addToCache(key, rows[0].Entry)

	entry, err := circuits.DecodeEntry(rows[0].Entry, c.directory)
	return entry, true, err
}

// Save implements circuits.Store with an upsert on the key column.
func (c *Client) Save(ctx context.Context, key string, entry circuits.Entry) error {
	value, err := circuits.EncodeEntry(entry)
	if err != nil {
		return err
	}
	row := HandleRow{Key: key, Entry: value, UpdatedAt: c.now().UTC()}
	_, _, err = c.client.From(c.table).
		Upsert(row, "key", "minimal", "").
		Execute()
	if err != nil {
		c.evict(key)
		return fmt.Errorf("failed to upsert circuit entry: %w", err)
	}

	if h, ok := entry.Handle(); ok {
		c.directory.Register(h)
	}
	c.addToCache(key, value)
	return nil
}

// Delete implements HandleStore.
func (c *Client) Delete(ctx context.Context, key string) error {
	c.evict(key)

	_, _, err := c.client.From(c.table).
		Delete("minimal", "").
		Eq("key", key).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete circuit entry: %w", err)
	}
	return nil
}

// Close closes the Supabase client
func (c *Client) Close() error {
	// Supabase client doesn't require explicit close
	return nil
}

// getFromCache retrieves an encoded entry from cache by key
func (c *Client) getFromCache(key string) (string, bool) {
	if c.cacheTTL <= 0 {
		return "", false
	}
	c.cache.mu.RLock()
	defer c.cache.mu.RUnlock()

	if e, ok := c.cache.entries[key]; ok && c.now().Before(e.expiresAt) {
		return e.value, true
	}
	return "", false
}

// addToCache adds an encoded entry to cache
func (c *Client) addToCache(key, value string) {
	if c.cacheTTL <= 0 {
		return
	}
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()

	c.cache.entries[key] = cacheEntry{
		value:     value,
		expiresAt: c.now().Add(c.cacheTTL),
	}
}

func (c *Client) evict(key string) {
	c.cache.mu.Lock()
	defer c.cache.mu.Unlock()
	delete(c.cache.entries, key)
}

// Compile-time check that Client implements HandleStore
var _ HandleStore = (*Client)(nil)
