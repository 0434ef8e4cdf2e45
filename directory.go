package circuits

import "sync"

// Directory resolves handle IDs to the handles hosted by this process.
// Persisted stores keep only the ID and resolve it here on read.
type Directory struct {
	mu      sync.RWMutex
	handles map[string]*Handle
}

// NewDirectory creates an empty directory.
func NewDirectory() *Directory {
	return &Directory{handles: make(map[string]*Handle)}
}

// Register adds h, replacing any handle with the same ID.
func (d *Directory) Register(h *Handle) {
	if h == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handles[h.ID()] = h
}

// Unregister removes the handle with the given ID.
func (d *Directory) Unregister(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.handles, id)
}

// Resolve returns the handle registered under id.
// A nil directory resolves nothing.
func (d *Directory) Resolve(id string) (*Handle, bool) {
	if d == nil {
		return nil, false
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	h, ok := d.handles[id]
	return h, ok
}

// Len returns the number of registered handles.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handles)
}
