// Package store persists canonicalized documents under string keys. Values
// are canonicalized and serialized on the way in, so any store backend holds
// the same JSON-safe shape regardless of the Go types it was given.
package store

import "context"

// Store defines the interface for all canonical document stores
type Store interface {
	// Put canonicalizes value and stores it under key
	Put(ctx context.Context, key string, value any) error

	// Get returns the stored document in canonical shape
	Get(ctx context.Context, key string) (any, bool, error)

	// Delete removes a document
	Delete(ctx context.Context, key string) error

	// Keys returns all stored keys
	Keys(ctx context.Context) ([]string, error)

	// Clear removes all documents
	Clear(ctx context.Context) error

	// Close releases the store's resources
	Close() error
}

// Provider defines the interface for store providers
type Provider interface {
	// Create creates a new store instance with the given options
	Create(options *Options) (Store, error)
}
