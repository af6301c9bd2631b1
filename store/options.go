package store

import (
	"github.com/MichaelAJay/go-logger"
	goserializer "github.com/MichaelAJay/go-serializer"

	"github.com/MichaelAJay/go-canonical"
)

// Option defines a function type for configuring store options
type Option func(*Options)

// Options represents configuration options for store instances
type Options struct {
	SerializerFormat goserializer.Format
	Logger           logger.Logger
	RedisOptions     *RedisOptions
	EncodeOptions    []canonical.Option
}

// RedisOptions represents configuration options for the Redis store
type RedisOptions struct {
	Address  string
	Password string
	DB       int
	PoolSize int
}

// WithSerializerFormat sets the wire format documents are stored in
func WithSerializerFormat(format goserializer.Format) Option {
	return func(o *Options) {
		o.SerializerFormat = format
	}
}

// WithLogger sets the logger for the store
func WithLogger(logger logger.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithRedisOptions sets the Redis-specific options
func WithRedisOptions(options *RedisOptions) Option {
	return func(o *Options) {
		o.RedisOptions = options
	}
}

// WithEncodeOptions sets the canonicalization options applied to every
// document on Put
func WithEncodeOptions(opts ...canonical.Option) Option {
	return func(o *Options) {
		o.EncodeOptions = opts
	}
}
