package canonical

// Option defines a function type for configuring encoder options
type Option func(*Options)

// Options represents configuration options for an encoder. Include, Exclude
// and ExcludeDefaults apply to the top level of the value being encoded and
// to elements of sequences, but are not propagated into the values of
// mappings; records consume them in their own dump. See DESIGN.md for the
// rationale behind keeping that asymmetry.
type Options struct {
	Include            FieldSet
	Exclude            FieldSet
	ByAlias            bool
	ExcludeUnset       bool
	ExcludeDefaults    bool
	ExcludeNone        bool
	Encoders           *Registry
	FilterInternalKeys bool
}

func defaultOptions() Options {
	return Options{
		ByAlias:            true,
		FilterInternalKeys: true,
	}
}

// WithInclude restricts encoding to the named fields or keys
func WithInclude(names ...string) Option {
	return func(o *Options) {
		o.Include = NewFieldSet(names...)
	}
}

// WithIncludeSet restricts encoding to the fields or keys in the set
func WithIncludeSet(set FieldSet) Option {
	return func(o *Options) {
		o.Include = set
	}
}

// WithExclude drops the named fields or keys from the encoding
func WithExclude(names ...string) Option {
	return func(o *Options) {
		o.Exclude = NewFieldSet(names...)
	}
}

// WithExcludeSet drops the fields or keys in the set from the encoding
func WithExcludeSet(set FieldSet) Option {
	return func(o *Options) {
		o.Exclude = set
	}
}

// WithByAlias controls whether struct fields and record fields are named by
// their alias (json tag) rather than their declared name. Defaults to true.
func WithByAlias(byAlias bool) Option {
	return func(o *Options) {
		o.ByAlias = byAlias
	}
}

// WithExcludeUnset omits record fields that were never explicitly set
func WithExcludeUnset() Option {
	return func(o *Options) {
		o.ExcludeUnset = true
	}
}

// WithExcludeDefaults omits fields equal to their default (zero) value
func WithExcludeDefaults() Option {
	return func(o *Options) {
		o.ExcludeDefaults = true
	}
}

// WithExcludeNone omits fields and keys whose value is nil
func WithExcludeNone() Option {
	return func(o *Options) {
		o.ExcludeNone = true
	}
}

// WithEncoders sets the custom override table. Entries are consulted before
// any built-in rule, by exact type first, then by instance-of scan in
// insertion order.
func WithEncoders(r *Registry) Option {
	return func(o *Options) {
		o.Encoders = r
	}
}

// WithFilterInternalKeys controls dropping of mapping keys that carry the
// reserved persistence-internal prefix. Defaults to true.
func WithFilterInternalKeys(filter bool) Option {
	return func(o *Options) {
		o.FilterInternalKeys = filter
	}
}
