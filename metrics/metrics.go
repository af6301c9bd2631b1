package metrics

import (
	"sync"
	"time"
)

// EncoderMetrics defines the interface for encoder metrics
type EncoderMetrics interface {
	RecordEncode(duration time.Duration)
	RecordError()
	GetMetrics() *EncoderMetricsSnapshot
}

// EncoderMetricsSnapshot represents a snapshot of encoder metrics
type EncoderMetricsSnapshot struct {
	Encodes       int64
	Errors        int64
	ErrorRate     float64
	EncodeLatency time.Duration
}

// defaultMetrics implements the EncoderMetrics interface
type defaultMetrics struct {
	encodes      int64
	errors       int64
	totalLatency time.Duration
	mu           sync.RWMutex
}

// NewMetrics creates a new metrics instance
func NewMetrics() EncoderMetrics {
	return &defaultMetrics{}
}

// RecordEncode records a successful encode and its latency
func (m *defaultMetrics) RecordEncode(duration time.Duration) {
	m.mu.Lock()
	m.encodes++
	m.totalLatency += duration
	m.mu.Unlock()
}

// RecordError records a failed encode
func (m *defaultMetrics) RecordError() {
	m.mu.Lock()
	m.errors++
	m.mu.Unlock()
}

// GetMetrics returns a snapshot of the current metrics
func (m *defaultMetrics) GetMetrics() *EncoderMetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := &EncoderMetricsSnapshot{
		Encodes: m.encodes,
		Errors:  m.errors,
	}
	total := m.encodes + m.errors
	if total > 0 {
		snapshot.ErrorRate = float64(m.errors) / float64(total)
	}
	if m.encodes > 0 {
		snapshot.EncodeLatency = m.totalLatency / time.Duration(m.encodes)
	}
	return snapshot
}
