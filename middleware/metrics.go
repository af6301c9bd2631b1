package middleware

import (
	"time"

	"github.com/MichaelAJay/go-canonical"
	"github.com/MichaelAJay/go-canonical/metrics"
)

// metricsEncoder wraps a ValueEncoder with metrics capabilities
type metricsEncoder struct {
	encoder canonical.ValueEncoder
	metrics metrics.EncoderMetrics
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(m metrics.EncoderMetrics) canonical.Middleware {
	return func(next canonical.ValueEncoder) canonical.ValueEncoder {
		return &metricsEncoder{
			encoder: next,
			metrics: m,
		}
	}
}

// Encode canonicalizes a value with metrics
func (e *metricsEncoder) Encode(value any) (any, error) {
	start := time.Now()
	encoded, err := e.encoder.Encode(value)

	if err != nil {
		e.metrics.RecordError()
		return nil, err
	}
	e.metrics.RecordEncode(time.Since(start))
	return encoded, nil
}
