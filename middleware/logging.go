package middleware

import (
	"fmt"
	"time"

	"github.com/MichaelAJay/go-logger"

	"github.com/MichaelAJay/go-canonical"
)

// loggingEncoder wraps a ValueEncoder with logging capabilities
type loggingEncoder struct {
	encoder canonical.ValueEncoder
	logger  logger.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger logger.Logger) canonical.Middleware {
	return func(next canonical.ValueEncoder) canonical.ValueEncoder {
		return &loggingEncoder{
			encoder: next,
			logger:  logger,
		}
	}
}

// Encode canonicalizes a value with logging
func (e *loggingEncoder) Encode(value any) (any, error) {
	start := time.Now()
	encoded, err := e.encoder.Encode(value)
	duration := time.Since(start)

	if err != nil {
		e.logger.Error("Encode error",
			logger.Field{Key: "type", Value: fmt.Sprintf("%T", value)},
			logger.Field{Key: "error", Value: err})
		return nil, err
	}

	e.logger.Debug("Encode",
		logger.Field{Key: "type", Value: fmt.Sprintf("%T", value)},
		logger.Field{Key: "duration", Value: duration})

	return encoded, nil
}
