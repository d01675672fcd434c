package core

import "context"

// Repository defines the contract for loading and flushing the note collection.
// Each call is a scoped open/close of the underlying storage; nothing stays open between calls.
type Repository interface {
	// Load reads the whole collection. A missing store yields an empty collection.
	Load(ctx context.Context) (*Collection, error)

	// Save replaces the stored collection with c.
	Save(ctx context.Context, c *Collection) error
}

// Watchable defines an interface for repositories that can report external changes.
type Watchable interface {
	// Watch emits an event for every note that changed in the store until ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}
