// Package canonical converts arbitrary in-memory Go values into values built
// only from JSON-safe primitives (nil, bool, numbers, string) and the two
// JSON composites ([]any, map[string]any). The result can be handed directly
// to any JSON-like marshaler.
//
// Encoding is a pure function of the input and the encoder's options. The
// built-in leaf conversion table is constructed once and never mutated, so a
// single Encoder is safe for concurrent use without locking. Recursion depth
// is bounded only by input nesting depth; cyclic inputs are not detected.
package canonical

// ValueEncoder is the interface implemented by anything that canonicalizes a
// value. Middleware wraps this interface.
type ValueEncoder interface {
	// Encode converts value into its canonical JSON-safe form.
	Encode(value any) (any, error)
}

// Middleware defines a function type for encoder middleware
type Middleware func(next ValueEncoder) ValueEncoder

// EncoderFunc converts a single value to a JSON-safe primitive or string.
// Functions registered in a Registry or the built-in table must be pure.
type EncoderFunc func(value any) (any, error)

// FieldSet restricts which mapping keys or record fields participate in an
// encoding. A nil FieldSet places no restriction.
type FieldSet map[string]struct{}

// NewFieldSet builds a FieldSet from field or key names
func NewFieldSet(names ...string) FieldSet {
	s := make(FieldSet, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

// Has reports whether name is in the set.
func (s FieldSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// DumpOptions carries the field-filtering options a Model's own serializer is
// expected to honor when dumping itself to a plain map.
type DumpOptions struct {
	Include         FieldSet
	Exclude         FieldSet
	ByAlias         bool
	ExcludeUnset    bool
	ExcludeDefaults bool
	ExcludeNone     bool
}

// Model is the interface for structured-record instances: schema-validated
// objects that own their serialization, including alias naming, default
// values, and "was explicitly set" tracking. The encoder dumps a Model
// through DumpModel and then re-encodes the resulting map to normalize any
// nested leaf types.
type Model interface {
	DumpModel(opts DumpOptions) (map[string]any, error)
}

// Mapper is the capability interface for types that expose key/value pairs.
// It is consulted as a last resort, after every structural and table rule
// has failed to claim the value.
type Mapper interface {
	AsMap() (map[string]any, error)
}

// Fielder is the capability interface for types that expose named fields.
// It is consulted after Mapper in the last-resort fallback.
type Fielder interface {
	Fields() (map[string]any, error)
}

// LegacyModel marks the deprecated record family that predates DumpModel.
// Encoding a LegacyModel always fails with ErrLegacyModel.
//
// Deprecated: implement Model instead.
type LegacyModel interface {
	LegacyDump() map[string]any
}

// undefinedType is the sentinel marker for fields that were never set.
type undefinedType struct{}

// Undefined is the sentinel "no value" marker. It encodes to nil.
var Undefined undefinedType

// Secret is a string whose value must never appear in encoded output. It
// encodes to a fixed placeholder; use Reveal to read the underlying value.
type Secret string

const secretPlaceholder = "**********"

// String returns the redaction placeholder, never the underlying value.
func (s Secret) String() string { return secretPlaceholder }

// Reveal returns the underlying secret value.
func (s Secret) Reveal() string { return string(s) }

// Encoder canonicalizes values according to a fixed set of options. The zero
// value is not usable; construct with New.
type Encoder struct {
	opts Options
}

var _ ValueEncoder = &Encoder{}

// New creates an encoder from the given options. The encoder takes a private
// copy of any custom Registry, so later Register calls on the original do not
// affect it.
func New(opts ...Option) *Encoder {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Encoders != nil {
		o.Encoders = o.Encoders.clone()
	}
	return &Encoder{opts: o}
}

// Encode converts value into its canonical JSON-safe form.
func (e *Encoder) Encode(value any) (any, error) {
	return encode(value, e.opts)
}

// Encode canonicalizes value with a one-off encoder built from opts.
func Encode(value any, opts ...Option) (any, error) {
	return New(opts...).Encode(value)
}
