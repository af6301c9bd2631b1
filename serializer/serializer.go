// Package serializer marshals values to wire formats through canonical form.
// Values are first converted to JSON-safe primitives and composites, then
// handed to the configured go-serializer format, so leaf types like UUIDs,
// timestamps and decimals serialize identically across formats.
package serializer

import (
	"fmt"

	goserializer "github.com/MichaelAJay/go-serializer"

	"github.com/MichaelAJay/go-canonical"
)

// Serializer canonicalizes values and marshals the canonical form.
type Serializer struct {
	encoder *canonical.Encoder
	inner   goserializer.Serializer
}

// New creates a serializer for the given format. Encoding options configure
// the canonicalization step.
func New(format goserializer.Format, opts ...canonical.Option) (*Serializer, error) {
	inner, err := goserializer.DefaultRegistry.New(format)
	if err != nil {
		return nil, fmt.Errorf("serializer: failed to create serializer for format %v: %w", format, err)
	}
	return &Serializer{
		encoder: canonical.New(opts...),
		inner:   inner,
	}, nil
}

// Marshal canonicalizes value and serializes the result.
func (s *Serializer) Marshal(value any) ([]byte, error) {
	encoded, err := s.encoder.Encode(value)
	if err != nil {
		return nil, err
	}
	return s.inner.Serialize(encoded)
}

// Unmarshal deserializes data back into canonical shape.
func (s *Serializer) Unmarshal(data []byte) (any, error) {
	var value any
	if err := s.inner.Deserialize(data, &value); err != nil {
		return nil, err
	}
	return value, nil
}
