package config

import (
	"sync/atomic"

	"github.com/edgesplit/edgesplit/internal/bucket"
)

// Handle is the process-wide catalog snapshot. Readers always observe a
// fully built catalog; reloads swap the pointer atomically and a failed
// rebuild leaves the previous snapshot in place.
type Handle struct {
	current atomic.Pointer[bucket.Catalog]
}

// NewHandle creates a handle publishing the given catalog.
func NewHandle(cat *bucket.Catalog) *Handle {
	h := &Handle{}
	h.current.Store(cat)
	return h
}

// Catalog returns the current snapshot.
func (h *Handle) Catalog() *bucket.Catalog {
	return h.current.Load()
}

// Swap publishes a new snapshot.
func (h *Handle) Swap(cat *bucket.Catalog) {
	h.current.Store(cat)
}
