package testutil

import (
	"sync"

	"github.com/MichaelAJay/go-canonical"
)

// MockEncoder implements canonical.ValueEncoder for testing middleware and
// stores. By default it returns the value unchanged; set OnEncodeCallback to
// control the result.
type MockEncoder struct {
	OnEncodeCallback func(value any) (any, error)
	mu               sync.Mutex
	calls            []any
}

var _ canonical.ValueEncoder = &MockEncoder{}

func NewMockEncoder() *MockEncoder {
	return &MockEncoder{}
}

// Encode implements ValueEncoder.
func (m *MockEncoder) Encode(value any) (any, error) {
	m.mu.Lock()
	m.calls = append(m.calls, value)
	m.mu.Unlock()

	if m.OnEncodeCallback != nil {
		return m.OnEncodeCallback(value)
	}
	return value, nil
}

// Calls returns the values Encode has been called with.
func (m *MockEncoder) Calls() []any {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]any, len(m.calls))
	copy(calls, m.calls)
	return calls
}
