package middleware

import (
	"github.com/MichaelAJay/go-canonical"
)

// Chain applies multiple middleware functions to an encoder in order
// The middleware are applied from right to left (last to first)
// so the rightmost middleware wraps the encoder directly
func Chain(encoder canonical.ValueEncoder, middlewares ...canonical.Middleware) canonical.ValueEncoder {
	// Apply middleware in reverse order so the first middleware in the list
	// is the outermost (executed first)
	for i := len(middlewares) - 1; i >= 0; i-- {
		encoder = middlewares[i](encoder)
	}
	return encoder
}

// Compose creates a single middleware from multiple middleware functions
// This is useful when you want to create a reusable middleware stack
func Compose(middlewares ...canonical.Middleware) canonical.Middleware {
	return func(encoder canonical.ValueEncoder) canonical.ValueEncoder {
		return Chain(encoder, middlewares...)
	}
}
