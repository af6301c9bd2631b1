package canonical

import "reflect"

// Registry is an ordered custom override table mapping types to converter
// functions. During encoding it is consulted before every built-in rule:
// first by exact type identity, then by an instance-of scan over entries in
// insertion order (interface entries match implementing types, concrete
// entries match assignable types).
//
// A Registry is mutable while being built. New copies it into the encoder,
// so an encoder's table never changes after construction.
type Registry struct {
	exact map[reflect.Type]EncoderFunc
	order []registryEntry
}

type registryEntry struct {
	typ reflect.Type
	fn  EncoderFunc
}

// NewRegistry creates an empty override table.
func NewRegistry() *Registry {
	return &Registry{
		exact: make(map[reflect.Type]EncoderFunc),
	}
}

// Register adds a converter for typ. Registering the same type again replaces
// the exact-match entry but keeps the original scan position. Returns the
// registry for chaining.
func (r *Registry) Register(typ reflect.Type, fn EncoderFunc) *Registry {
	if _, exists := r.exact[typ]; !exists {
		r.order = append(r.order, registryEntry{typ: typ, fn: fn})
	} else {
		for i := range r.order {
			if r.order[i].typ == typ {
				r.order[i].fn = fn
				break
			}
		}
	}
	r.exact[typ] = fn
	return r
}

// RegisterFunc adds a converter for T with a typed signature.
func RegisterFunc[T any](r *Registry, fn func(T) (any, error)) *Registry {
	return r.Register(TypeOf[T](), func(v any) (any, error) {
		tv, ok := v.(T)
		if !ok {
			// Matched by assignability rather than identity; convert.
			tv = reflect.ValueOf(v).Convert(TypeOf[T]()).Interface().(T)
		}
		return fn(tv)
	})
}

// TypeOf returns the reflect.Type for T, usable as a Register key. Unlike
// reflect.TypeOf on a zero value it also works for interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// lookup returns the converter registered for exactly t.
func (r *Registry) lookup(t reflect.Type) (EncoderFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.exact[t]
	return fn, ok
}

// scan returns the first entry, in insertion order, whose type t is an
// instance of: implementing an interface entry, assignable to a concrete
// entry, or a named variant sharing a concrete entry's underlying type.
// Assignability alone misses the named-variant case because most entry types
// (string, time.Time) are themselves defined types.
func (r *Registry) scan(t reflect.Type) (EncoderFunc, bool) {
	if r == nil {
		return nil, false
	}
	for _, entry := range r.order {
		if entry.typ == t {
			continue // exact matches were already tried
		}
		if entry.typ.Kind() == reflect.Interface {
			if t.Implements(entry.typ) {
				return entry.fn, true
			}
			continue
		}
		if t.AssignableTo(entry.typ) {
			return entry.fn, true
		}
		if t.Kind() == entry.typ.Kind() && t.ConvertibleTo(entry.typ) {
			return entry.fn, true
		}
	}
	return nil, false
}

func (r *Registry) clone() *Registry {
	if r == nil {
		return nil
	}
	c := &Registry{
		exact: make(map[reflect.Type]EncoderFunc, len(r.exact)),
		order: make([]registryEntry, len(r.order)),
	}
	for t, fn := range r.exact {
		c.exact[t] = fn
	}
	copy(c.order, r.order)
	return c
}
