package store

import (
	"cmp"
	"slices"
	"sync"
)

// Collection is a mechanical ordered key/value store. It performs no
// validation of its own: Insert silently upserts, and callers are
// responsible for any uniqueness or referential checks before writing.
type Collection[K cmp.Ordered, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// NewCollection creates an empty Collection.
func NewCollection[K cmp.Ordered, V any]() *Collection[K, V] {
	return &Collection[K, V]{
		items: make(map[K]V),
	}
}

// Insert stores value under key, overwriting any previous value.
func (c *Collection[K, V]) Insert(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
}

// Get returns the value stored under key, if any.
func (c *Collection[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.items[key]
	return value, ok
}

// Contains reports whether a value is stored under key.
func (c *Collection[K, V]) Contains(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.items[key]
	return ok
}

// Values returns a point-in-time snapshot of all values in ascending key
// order. The snapshot never reflects a partially applied write.
func (c *Collection[K, V]) Values() []V {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	values := make([]V, 0, len(keys))
	for _, k := range keys {
		values = append(values, c.items[k])
	}
	return values
}

// Keys returns a snapshot of all keys in ascending order.
func (c *Collection[K, V]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, len(c.items))
	for k := range c.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of stored entries.
func (c *Collection[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
