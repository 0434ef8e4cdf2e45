package circuits

import (
	"sync"
	"time"
	"weak"

	"github.com/google/uuid"
)

// Handle is a stable indirection to a live circuit.
// It references the circuit weakly, so holding a handle (or storing it in
// a registry) never keeps a circuit alive on its own.
type Handle struct {
	id string

	mu  sync.RWMutex
	ref weak.Pointer[Circuit]
}

// ID returns the handle identifier. It is the ID of the circuit the
// handle was created for and does not change on replacement.
func (h *Handle) ID() string {
	if h == nil {
		return ""
	}
	return h.id
}

// Circuit returns the circuit currently referenced by the handle.
// Returns nil if the handle is detached or the circuit was reclaimed.
func (h *Handle) Circuit() *Circuit {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ref.Value()
}

func (h *Handle) bind(c *Circuit) {
	if h == nil || c == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ref = weak.Make(c)
}

// unbind clears the reference only if it still points at c.
func (h *Handle) unbind(c *Circuit) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ref.Value() == c {
		h.ref = weak.Pointer[Circuit]{}
	}
}

// Circuit is the server-side state of one interactive UI session.
type Circuit struct {
	id        string
	createdAt time.Time

	mu     sync.RWMutex
	handle *Handle
}

// NewCircuit creates a circuit bound to a fresh handle.
// An empty id is replaced with a random UUID.
func NewCircuit(id string) *Circuit {
	if id == "" {
		id = uuid.NewString()
	}
	c := &Circuit{
		id:        id,
		createdAt: time.Now(),
	}
	c.handle = &Handle{id: id}
	c.handle.bind(c)
	return c
}

// ID returns the circuit identifier.
func (c *Circuit) ID() string { return c.id }

// CreatedAt returns the time the circuit was created.
func (c *Circuit) CreatedAt() time.Time { return c.createdAt }

// Handle returns the handle currently owned by the circuit.
func (c *Circuit) Handle() *Handle {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.handle
}

// Replace moves c's handle to next. Every key that resolves to the
// handle now resolves to next; c is left detached. The handle next owned
// before is detached from it.
func (c *Circuit) Replace(next *Circuit) {
	if next == nil || next == c {
		return
	}
	c.mu.Lock()
	h := c.handle
	if h == nil {
		h = &Handle{id: c.id}
	}
	c.handle = &Handle{id: c.id}
	c.mu.Unlock()

	next.mu.Lock()
	prev := next.handle
	next.handle = h
	next.mu.Unlock()

	prev.unbind(next)
	h.bind(next)
}

// Detach invalidates the circuit's handle. Lookups through the handle
// return nil afterwards. A handle already moved to another circuit is
// left untouched.
func (c *Circuit) Detach() {
	c.Handle().unbind(c)
}
