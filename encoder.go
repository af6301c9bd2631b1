package canonical

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// internalKeyPrefix is the reserved prefix persistence layers use to stash
// non-serializable bookkeeping state in otherwise plain mappings.
const internalKeyPrefix = "_sa"

// encode is the single recursive procedure behind every Encoder. Dispatch is
// an explicit ordered chain: custom overrides, records, structural rules,
// the built-in leaf table, then the capability-interface fallback.
func encode(value any, opts Options) (any, error) {
	// Custom overrides win over every built-in rule. Their result is
	// returned verbatim, with no further recursion.
	if value != nil && opts.Encoders != nil {
		t := reflect.TypeOf(value)
		if fn, ok := opts.Encoders.lookup(t); ok {
			return fn(value)
		}
		if fn, ok := opts.Encoders.scan(t); ok {
			return fn(value)
		}
	}

	if value == nil {
		return nil, nil
	}

	// Fail fast on the deprecated record family rather than guessing at a
	// serialization for it.
	if _, ok := value.(LegacyModel); ok {
		return nil, fmt.Errorf("%w: %T", ErrLegacyModel, value)
	}

	if m, ok := value.(Model); ok {
		return encodeModel(m, opts)
	}

	if _, ok := value.(undefinedType); ok {
		return nil, nil
	}

	rv := reflect.ValueOf(value)
	t := rv.Type()

	// Exact leaf conversions run before the structural rules because several
	// leaf types share a kind with the containers below: a UUID is a byte
	// array, an IP is a byte slice, a timestamp is a struct.
	if fn, ok := builtins.lookup(t); ok {
		return fn(value)
	}

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		// NaN and the infinities pass through. That fails strict JSON but
		// matches the legacy behavior leaf decimals rely on.
		return rv.Float(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return encode(rv.Elem().Interface(), opts)
	case reflect.Map:
		return encodeMap(rv, opts)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
			// Byte sequences are leaves, not sequences; the table scan
			// below converts named []byte variants.
			break
		}
		return encodeSequence(rv, opts)
	case reflect.Struct:
		if fn, ok := builtins.scan(t); ok {
			return fn(value)
		}
		// Types that opt into a capability interface own their conversion;
		// field reflection is only for plain structs.
		if _, ok := value.(Mapper); ok {
			return encodeFallback(value, opts)
		}
		if _, ok := value.(Fielder); ok {
			return encodeFallback(value, opts)
		}
		return encodeStruct(rv, opts)
	}

	if fn, ok := builtins.scan(t); ok {
		return fn(value)
	}

	return encodeFallback(value, opts)
}

// encodeModel dumps a structured record through its own serializer, which
// consumes the filtering options, then re-encodes the dump to normalize any
// nested leaf types. Include/Exclude/ByAlias/ExcludeUnset are already applied
// by the dump and are not carried into the re-encode.
func encodeModel(m Model, opts Options) (any, error) {
	dump, err := m.DumpModel(DumpOptions{
		Include:         opts.Include,
		Exclude:         opts.Exclude,
		ByAlias:         opts.ByAlias,
		ExcludeUnset:    opts.ExcludeUnset,
		ExcludeDefaults: opts.ExcludeDefaults,
		ExcludeNone:     opts.ExcludeNone,
	})
	if err != nil {
		return nil, fmt.Errorf("canonical: model dump: %w", err)
	}

	nested := opts
	nested.Include = nil
	nested.Exclude = nil
	nested.ByAlias = true
	nested.ExcludeUnset = false
	return encode(dump, nested)
}

// encodeMap filters this level's keys through Include/Exclude, the internal
// prefix filter and ExcludeNone, then recursively encodes keys and values.
// Include, Exclude and ExcludeDefaults only select keys at this level; they
// are not propagated into the nested values.
func encodeMap(rv reflect.Value, opts Options) (any, error) {
	if rv.IsNil() {
		return nil, nil
	}

	nested := opts
	nested.Include = nil
	nested.Exclude = nil
	nested.ExcludeDefaults = false

	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		encodedKey, err := encode(iter.Key().Interface(), nested)
		if err != nil {
			return nil, err
		}
		key, err := keyString(encodedKey)
		if err != nil {
			return nil, err
		}
		if opts.Include != nil && !opts.Include.Has(key) {
			continue
		}
		if opts.Exclude.Has(key) {
			continue
		}
		if opts.FilterInternalKeys && strings.HasPrefix(key, internalKeyPrefix) {
			continue
		}
		if opts.ExcludeNone && isNilValue(iter.Value()) {
			continue
		}
		encodedValue, err := encode(iter.Value().Interface(), nested)
		if err != nil {
			return nil, err
		}
		out[key] = encodedValue
	}
	return out, nil
}

// encodeSequence encodes every element with the full option set, Include,
// Exclude and ExcludeDefaults included, so records inside a sequence filter
// the same way a top-level record would.
func encodeSequence(rv reflect.Value, opts Options) (any, error) {
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return nil, nil
	}
	out := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		encoded, err := encode(rv.Index(i).Interface(), opts)
		if err != nil {
			return nil, err
		}
		out = append(out, encoded)
	}
	return out, nil
}

// encodeStruct converts a plain struct to a field-name -> value mapping.
// Filtering matches the emitted key, so with ByAlias the json tag name is
// what Include and Exclude see.
func encodeStruct(rv reflect.Value, opts Options) (any, error) {
	nested := opts
	nested.Include = nil
	nested.Exclude = nil
	nested.ExcludeDefaults = false

	out := make(map[string]any)
	if err := appendStructFields(rv, opts, nested, out); err != nil {
		return nil, err
	}
	return out, nil
}

func appendStructFields(rv reflect.Value, opts, nested Options, out map[string]any) error {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		alias, omit := jsonTagName(f)
		if omit {
			continue
		}
		fv := rv.Field(i)

		// Embedded structs without their own tag flatten into the parent,
		// the way encoding/json treats them. The field itself may be
		// unexported as long as the type is a struct; only its exported
		// fields promote. Leaf structs such as an embedded time.Time stay
		// whole fields so the conversion table can claim them.
		if f.Anonymous && alias == "" {
			ev := fv
			et := f.Type
			if et.Kind() == reflect.Pointer {
				if ev.IsNil() {
					continue
				}
				ev = ev.Elem()
				et = et.Elem()
			}
			if et.Kind() == reflect.Struct && !isBuiltinLeaf(et) {
				if err := appendStructFields(ev, opts, nested, out); err != nil {
					return err
				}
				continue
			}
		}

		if !f.IsExported() {
			continue
		}

		key := f.Name
		if opts.ByAlias && alias != "" {
			key = alias
		}
		if opts.Include != nil && !opts.Include.Has(key) {
			continue
		}
		if opts.Exclude.Has(key) {
			continue
		}
		if opts.ExcludeDefaults && fv.IsZero() {
			continue
		}
		if opts.ExcludeNone && isNilValue(fv) {
			continue
		}
		encoded, err := encode(fv.Interface(), nested)
		if err != nil {
			return err
		}
		out[key] = encoded
	}
	return nil
}

// encodeFallback tries the capability interfaces in order: key/value pairs,
// then named fields. Both failing produces the aggregate error.
func encodeFallback(value any, opts Options) (any, error) {
	var attempts []error

	if m, ok := value.(Mapper); ok {
		data, err := m.AsMap()
		if err == nil {
			return encode(data, opts)
		}
		attempts = append(attempts, fmt.Errorf("AsMap: %w", err))
	} else {
		attempts = append(attempts, errors.New("does not implement Mapper"))
	}

	if f, ok := value.(Fielder); ok {
		data, err := f.Fields()
		if err == nil {
			return encode(data, opts)
		}
		attempts = append(attempts, fmt.Errorf("Fields: %w", err))
	} else {
		attempts = append(attempts, errors.New("does not implement Fielder"))
	}

	return nil, &UnencodableTypeError{Type: reflect.TypeOf(value), Attempts: attempts}
}

// keyString converts an encoded map key to the string form JSON requires.
func keyString(encodedKey any) (string, error) {
	switch k := encodedKey.(type) {
	case string:
		return k, nil
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(k), nil
	case int64:
		return strconv.FormatInt(k, 10), nil
	case int:
		return strconv.Itoa(k), nil
	case uint64:
		return strconv.FormatUint(k, 10), nil
	case float64:
		return strconv.FormatFloat(k, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: map key of type %T", ErrUnencodable, encodedKey)
	}
}

// isBuiltinLeaf reports whether t, or a type it shares an underlying type
// with, has a built-in leaf conversion.
func isBuiltinLeaf(t reflect.Type) bool {
	if _, ok := builtins.lookup(t); ok {
		return true
	}
	_, ok := builtins.scan(t)
	return ok
}

// isNilValue reports whether v is the "no value" a caller means by nil: a
// nil pointer or a nil interface, directly or behind an interface.
func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer:
		return v.IsNil()
	case reflect.Interface:
		if v.IsNil() {
			return true
		}
		return isNilValue(v.Elem())
	}
	return false
}

// jsonTagName returns the alias from a json struct tag and whether the field
// is skipped outright.
func jsonTagName(f reflect.StructField) (alias string, omit bool) {
	tag, ok := f.Tag.Lookup("json")
	if !ok {
		return "", false
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return "", true
	}
	return name, false
}
