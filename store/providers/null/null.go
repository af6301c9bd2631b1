package null

import (
	"context"

	"github.com/MichaelAJay/go-canonical/store"
)

// nullStore implements the Store interface but keeps nothing
type nullStore struct{}

// nullProvider implements the Provider interface
type nullProvider struct{}

// NewProvider creates a new null store provider
func NewProvider() store.Provider {
	return &nullProvider{}
}

// Create creates a new null store instance
func (p *nullProvider) Create(options *store.Options) (store.Store, error) {
	return NewNullStore(options), nil
}

// NewNullStore creates a store that discards everything it is given
func NewNullStore(options *store.Options) store.Store {
	return &nullStore{}
}

// Put does nothing
func (c *nullStore) Put(ctx context.Context, key string, value any) error {
	return nil
}

// Get always returns not found
func (c *nullStore) Get(ctx context.Context, key string) (any, bool, error) {
	return nil, false, nil
}

// Delete does nothing
func (c *nullStore) Delete(ctx context.Context, key string) error {
	return nil
}

// Keys returns no keys
func (c *nullStore) Keys(ctx context.Context) ([]string, error) {
	return nil, nil
}

// Clear does nothing
func (c *nullStore) Clear(ctx context.Context) error {
	return nil
}

// Close does nothing
func (c *nullStore) Close() error {
	return nil
}
