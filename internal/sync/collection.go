// Package sync keeps local view state consistent with the backend, the
// server of record. Every resource follows the same cycle: load the
// whole collection, render, mutate via the API, reconcile by reloading
// (or, for creation, by an optimistic prepend that the next reload
// discards). Failed loads keep the previous items so views never blank.
package sync

import (
	"sync"
	"time"
)

// Collection holds the local, non-authoritative copy of a resource
// list. It is safe for concurrent use.
type Collection[T any] struct {
	mu         sync.RWMutex
	items      []T
	loading    bool
	lastErr    error
	loadedAt   time.Time
	optimistic int // items prepended ahead of the next reconcile
}

// NewCollection creates an empty collection.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{}
}

// Items returns a snapshot copy of the current items.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the current item count.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Replace installs an authoritative server snapshot. Any outstanding
// optimistic inserts are discarded wholesale; the server list wins.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = items
	c.optimistic = 0
	c.lastErr = nil
	c.loadedAt = time.Now()
}

// Prepend applies an optimistic insert at the head of the list, making
// a just-created item visible before the next authoritative load.
func (c *Collection[T]) Prepend(item T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = append([]T{item}, c.items...)
	c.optimistic++
}

// Loading reports whether a load is in flight.
func (c *Collection[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// LastError returns the most recent load failure, cleared by the next
// successful Replace.
func (c *Collection[T]) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// LoadedAt returns when the last authoritative snapshot landed, zero
// if none has.
func (c *Collection[T]) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// HasOptimistic reports whether unreconciled optimistic inserts exist.
func (c *Collection[T]) HasOptimistic() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.optimistic > 0
}

// beginLoad marks a load in flight. Returns false when one is already
// running, so duplicate submissions collapse into the outstanding one.
func (c *Collection[T]) beginLoad() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		return false
	}
	c.loading = true
	return true
}

// endLoad clears the loading flag. Runs in a defer so the indicator is
// never left stuck regardless of how the load finished.
func (c *Collection[T]) endLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
}

func (c *Collection[T]) setError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = err
}
