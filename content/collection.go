package content

import "sync"

// Collection is an in-memory list of records keyed by an id function.
// Reads return copies; Delete swaps in a freshly filtered slice so readers
// never observe a partially removed list.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T
	key   func(T) string
}

// NewCollection returns a collection seeded with a copy of seed.
func NewCollection[T any](key func(T) string, seed []T) *Collection[T] {
	items := make([]T, len(seed))
	copy(items, seed)
	return &Collection[T]{items: items, key: key}
}

// All returns a copy of every record in insertion order.
func (c *Collection[T]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of records.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	return c.Find(func(v T) bool { return c.key(v) == id })
}

// Find returns the first record matching pred.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, v := range c.items {
		if pred(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Upsert replaces the record with the same id in place, or appends it.
// It reports whether an existing record was replaced.
func (c *Collection[T]) Upsert(v T) bool {
	id := c.key(v)
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.key(c.items[i]) == id {
			c.items[i] = v
			return true
		}
	}
	c.items = append(c.items, v)
	return false
}

// Delete removes the record with the given id and reports whether it existed.
func (c *Collection[T]) Delete(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	kept := make([]T, 0, len(c.items))
	for _, v := range c.items {
		if c.key(v) != id {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(c.items) {
		return false
	}
	c.items = kept
	return true
}
