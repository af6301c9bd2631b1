package memory

import (
	"context"
	"sync"

	"github.com/MichaelAJay/go-logger"
	goserializer "github.com/MichaelAJay/go-serializer"

	"github.com/MichaelAJay/go-canonical"
	"github.com/MichaelAJay/go-canonical/serializer"
	"github.com/MichaelAJay/go-canonical/store"
)

// memoryStore implements the Store interface using an in-memory map
type memoryStore struct {
	entries    map[string][]byte
	serializer *serializer.Serializer
	logger     logger.Logger
	mu         sync.RWMutex
}

// memoryProvider implements the Provider interface
type memoryProvider struct{}

// NewProvider creates a new memory store provider
func NewProvider() store.Provider {
	return &memoryProvider{}
}

// Create creates a new memory store instance
func (p *memoryProvider) Create(options *store.Options) (store.Store, error) {
	return NewMemoryStore(options)
}

// NewMemoryStore creates a new in-memory canonical document store
func NewMemoryStore(options *store.Options) (store.Store, error) {
	// Default to MessagePack for compact storage
	format := goserializer.Msgpack
	var encodeOpts []canonical.Option
	var log logger.Logger
	if options != nil {
		if options.SerializerFormat != "" {
			format = options.SerializerFormat
		}
		encodeOpts = options.EncodeOptions
		log = options.Logger
	}

	s, err := serializer.New(format, encodeOpts...)
	if err != nil {
		return nil, err
	}

	return &memoryStore{
		entries:    make(map[string][]byte),
		serializer: s,
		logger:     log,
	}, nil
}

// Put canonicalizes value and stores it under key
func (c *memoryStore) Put(ctx context.Context, key string, value any) error {
	if key == "" {
		return store.ErrInvalidKey
	}
	if ctx.Err() != nil {
		return store.ErrContextCanceled
	}

	data, err := c.serializer.Marshal(value)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Store put error", logger.Field{Key: "key", Value: key}, logger.Field{Key: "error", Value: err})
		}
		return err
	}

	c.mu.Lock()
	c.entries[key] = data
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Debug("Store put", logger.Field{Key: "key", Value: key}, logger.Field{Key: "size", Value: len(data)})
	}
	return nil
}

// Get returns the stored document in canonical shape
func (c *memoryStore) Get(ctx context.Context, key string) (any, bool, error) {
	if key == "" {
		return nil, false, store.ErrInvalidKey
	}
	if ctx.Err() != nil {
		return nil, false, store.ErrContextCanceled
	}

	c.mu.RLock()
	data, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}

	value, err := c.serializer.Unmarshal(data)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Delete removes a document
func (c *memoryStore) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Keys returns all stored keys
func (c *memoryStore) Keys(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys, nil
}

// Clear removes all documents
func (c *memoryStore) Clear(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string][]byte)
	c.mu.Unlock()
	return nil
}

// Close releases the store's resources
func (c *memoryStore) Close() error {
	c.mu.Lock()
	c.entries = nil
	c.mu.Unlock()
	return nil
}
