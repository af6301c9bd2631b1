package canonical

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Common error types
var (
	ErrUnencodable = errors.New("canonical: value cannot be encoded")
	ErrLegacyModel = errors.New("canonical: legacy models are not supported")
)

// UnencodableTypeError reports a value that is neither a primitive, a known
// composite, a known leaf type, nor convertible through the Mapper or Fielder
// capability interfaces. Attempts carries the errors from each coercion that
// was tried.
type UnencodableTypeError struct {
	Type     reflect.Type
	Attempts []error
}

func (e *UnencodableTypeError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("canonical: cannot encode value of type %v", e.Type)
	}
	msgs := make([]string, len(e.Attempts))
	for i, err := range e.Attempts {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("canonical: cannot encode value of type %v: %s", e.Type, strings.Join(msgs, "; "))
}

// Unwrap lets errors.Is match ErrUnencodable.
func (e *UnencodableTypeError) Unwrap() error {
	return ErrUnencodable
}
