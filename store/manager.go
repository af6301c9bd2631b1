package store

import (
	"fmt"
	"sync"
)

// Manager defines the interface for managing store instances
type Manager interface {
	// GetStore returns a named store instance with specified options
	GetStore(name string, options ...Option) (Store, error)

	// RegisterProvider registers a new store provider
	RegisterProvider(name string, provider Provider)

	// GetStores returns all registered store instances
	GetStores() map[string]Store

	// Close closes all managed stores
	Close() error
}

// storeManager implements the Manager interface
type storeManager struct {
	providers map[string]Provider
	stores    map[string]Store
	mu        sync.RWMutex
}

// NewManager creates a new store manager instance.
// The manager provides centralized management of multiple store instances,
// supporting different providers (memory, Redis) and configurations.
// It handles provider registration, store lifecycle, and resource cleanup.
func NewManager() Manager {
	return &storeManager{
		providers: make(map[string]Provider),
		stores:    make(map[string]Store),
	}
}

// GetStore returns a named store instance with specified options
func (m *storeManager) GetStore(name string, options ...Option) (Store, error) {
	m.mu.RLock()
	s, exists := m.stores[name]
	m.mu.RUnlock()

	if exists {
		return s, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if s, exists = m.stores[name]; exists {
		return s, nil
	}

	// Create store options
	opts := &Options{}
	for _, opt := range options {
		opt(opts)
	}

	// Get provider for the store type
	provider, exists := m.providers[name]
	if !exists {
		return nil, fmt.Errorf("store provider not found: %s", name)
	}

	// Create new store instance
	s, err := provider.Create(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	m.stores[name] = s
	return s, nil
}

// RegisterProvider registers a new store provider
func (m *storeManager) RegisterProvider(name string, provider Provider) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.providers[name] = provider
}

// GetStores returns all registered store instances
func (m *storeManager) GetStores() map[string]Store {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stores := make(map[string]Store, len(m.stores))
	for k, v := range m.stores {
		stores[k] = v
	}
	return stores
}

// Close closes all managed stores
func (m *storeManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error
	for name, s := range m.stores {
		if err := s.Close(); err != nil {
			lastErr = fmt.Errorf("failed to close store %s: %w", name, err)
		}
		delete(m.stores, name)
	}

	return lastErr
}
