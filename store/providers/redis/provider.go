package redis

import (
	"errors"

	"github.com/go-redis/redis/v8"

	"github.com/MichaelAJay/go-canonical/store"
)

// ErrInvalidRedisOptions indicates missing or unusable Redis configuration
var ErrInvalidRedisOptions = errors.New("store: invalid redis options")

// redisProvider implements the Provider interface
type redisProvider struct{}

// NewProvider creates a new Redis store provider
func NewProvider() store.Provider {
	return &redisProvider{}
}

// Create creates a new Redis store instance
func (p *redisProvider) Create(options *store.Options) (store.Store, error) {
	if options == nil {
		return nil, errors.New("store options cannot be nil")
	}

	// If Redis options aren't provided, try to load from environment
	if options.RedisOptions == nil {
		options.RedisOptions = LoadRedisOptionsFromEnv()
	}

	// Validate that we have an address at minimum
	if options.RedisOptions.Address == "" {
		return nil, ErrInvalidRedisOptions
	}

	// Configure Redis client
	redisOpts := &redis.Options{
		Addr:     options.RedisOptions.Address,
		Password: options.RedisOptions.Password,
		DB:       options.RedisOptions.DB,
	}

	// Set pool size if specified
	if options.RedisOptions.PoolSize > 0 {
		redisOpts.PoolSize = options.RedisOptions.PoolSize
	}

	client := redis.NewClient(redisOpts)

	return NewRedisStore(client, options)
}
