package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MichaelAJay/go-logger"
	goserializer "github.com/MichaelAJay/go-serializer"
	"github.com/go-redis/redis/v8"

	"github.com/MichaelAJay/go-canonical"
	"github.com/MichaelAJay/go-canonical/serializer"
	"github.com/MichaelAJay/go-canonical/store"
)

const (
	// All documents live under a common prefix so Clear and Keys
	// never touch unrelated data in a shared Redis instance.
	keyPrefix = "canonical:"

	// Documents are durable by default; Redis persistence is the
	// operator's concern, not a TTL's.
	noExpiration = time.Duration(0)
)

// redisStore implements the Store interface using Redis
type redisStore struct {
	client     *redis.Client
	serializer *serializer.Serializer
	logger     logger.Logger
}

// RedisStore exposes the Redis store implementation
type RedisStore struct {
	*redisStore
}

// NewRedisStore creates a new Redis-backed canonical document store
// with an existing client.
func NewRedisStore(client *redis.Client, options *store.Options) (store.Store, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client is required")
	}

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
		return nil, fmt.Errorf("failed to create serializer: %w", err)
	}

	c := &redisStore{
		client:     client,
		serializer: s,
		logger:     log,
	}

	// Check connection to Redis
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{c}, nil
}

// formatKey creates a properly formatted key with prefix
func formatKey(key string) string {
	return keyPrefix + key
}

// Put canonicalizes value and stores it under key
func (c *redisStore) Put(ctx context.Context, key string, value any) error {
	if key == "" {
		return store.ErrInvalidKey
	}

	if ctx.Err() != nil {
		return store.ErrContextCanceled
	}

	data, err := c.serializer.Marshal(value)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("Store put error",
				logger.Field{Key: "key", Value: key},
				logger.Field{Key: "error", Value: err.Error()})
		}
		return err
	}

	formattedKey := formatKey(key)
	if err := c.client.Set(ctx, formattedKey, data, noExpiration).Err(); err != nil {
		return err
	}

	if c.logger != nil {
		c.logger.Debug("Store put",
			logger.Field{Key: "key", Value: key},
			logger.Field{Key: "size", Value: len(data)})
	}
	return nil
}

// Get returns the stored document in canonical shape
func (c *redisStore) Get(ctx context.Context, key string) (any, bool, error) {
	if key == "" {
		return nil, false, store.ErrInvalidKey
	}

	if ctx.Err() != nil {
		return nil, false, store.ErrContextCanceled
	}

	formattedKey := formatKey(key)
	data, err := c.client.Get(ctx, formattedKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, err
	}

	value, err := c.serializer.Unmarshal(data)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Delete removes a document
func (c *redisStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return store.ErrInvalidKey
	}

	if ctx.Err() != nil {
		return store.ErrContextCanceled
	}

	return c.client.Del(ctx, formatKey(key)).Err()
}

// Keys returns all stored keys
func (c *redisStore) Keys(ctx context.Context) ([]string, error) {
	if ctx.Err() != nil {
		return nil, store.ErrContextCanceled
	}

	keys, err := c.scanKeys(ctx)
	if err != nil {
		return nil, err
	}

	// Remove prefix from keys
	for i, fullKey := range keys {
		keys[i] = strings.TrimPrefix(fullKey, keyPrefix)
	}
	return keys, nil
}

// Clear removes all documents under the store's prefix
func (c *redisStore) Clear(ctx context.Context) error {
	if ctx.Err() != nil {
		return store.ErrContextCanceled
	}

	keys, err := c.scanKeys(ctx)
	if err != nil {
		return err
	}

	// Delete found keys in batches of 100
	for i := 0; i < len(keys); i += 100 {
		end := i + 100
		if end > len(keys) {
			end = len(keys)
		}
		if err := c.client.Del(ctx, keys[i:end]...).Err(); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the Redis client
func (c *redisStore) Close() error {
	return c.client.Close()
}

// scanKeys collects all prefixed keys via SCAN
func (c *redisStore) scanKeys(ctx context.Context) ([]string, error) {
	var cursor uint64
	var err error
	var keys []string

	for {
		var scanKeys []string
		scanKeys, cursor, err = c.client.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}

		keys = append(keys, scanKeys...)

		if cursor == 0 {
			break
		}
	}
	return keys, nil
}
