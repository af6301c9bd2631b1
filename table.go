package canonical

import (
	"encoding/json"
	"math"
	"math/big"
	"net"
	"net/netip"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
)

// builtinTable is the static leaf-type conversion table. It is built once at
// package initialization and never mutated afterward; entries are consulted
// by exact type first and, for values no structural rule claimed, by an
// assignability scan in declaration order.
type builtinTable struct {
	exact map[reflect.Type]EncoderFunc
	order []tableEntry
}

type tableEntry struct {
	typ reflect.Type
	fn  EncoderFunc
}

var builtins = newBuiltinTable()

func newBuiltinTable() *builtinTable {
	t := &builtinTable{exact: make(map[reflect.Type]EncoderFunc)}

	add := func(typ reflect.Type, fn EncoderFunc) {
		t.exact[typ] = fn
		t.order = append(t.order, tableEntry{typ: typ, fn: fn})
	}

	add(TypeOf[time.Time](), func(v any) (any, error) {
		return valueAs[time.Time](v).Format(time.RFC3339Nano), nil
	})
	add(TypeOf[time.Duration](), func(v any) (any, error) {
		return valueAs[time.Duration](v).Seconds(), nil
	})
	add(TypeOf[uuid.UUID](), func(v any) (any, error) {
		return valueAs[uuid.UUID](v).String(), nil
	})
	add(TypeOf[apd.Decimal](), func(v any) (any, error) {
		d := valueAs[apd.Decimal](v)
		return encodeDecimal(&d)
	})
	add(TypeOf[*apd.Decimal](), func(v any) (any, error) {
		return encodeDecimal(valueAs[*apd.Decimal](v))
	})
	add(TypeOf[*big.Int](), func(v any) (any, error) {
		return encodeBigInt(valueAs[*big.Int](v)), nil
	})
	add(TypeOf[big.Int](), func(v any) (any, error) {
		i := valueAs[big.Int](v)
		return encodeBigInt(&i), nil
	})
	add(TypeOf[*big.Rat](), func(v any) (any, error) {
		return encodeBigRat(valueAs[*big.Rat](v)), nil
	})
	add(TypeOf[big.Rat](), func(v any) (any, error) {
		r := valueAs[big.Rat](v)
		return encodeBigRat(&r), nil
	})
	add(TypeOf[*big.Float](), func(v any) (any, error) {
		f, _ := valueAs[*big.Float](v).Float64()
		return f, nil
	})
	add(TypeOf[big.Float](), func(v any) (any, error) {
		bf := valueAs[big.Float](v)
		f, _ := bf.Float64()
		return f, nil
	})
	add(TypeOf[net.IP](), func(v any) (any, error) {
		return valueAs[net.IP](v).String(), nil
	})
	add(TypeOf[*net.IPNet](), func(v any) (any, error) {
		return valueAs[*net.IPNet](v).String(), nil
	})
	add(TypeOf[net.HardwareAddr](), func(v any) (any, error) {
		return valueAs[net.HardwareAddr](v).String(), nil
	})
	add(TypeOf[netip.Addr](), func(v any) (any, error) {
		return valueAs[netip.Addr](v).String(), nil
	})
	add(TypeOf[netip.AddrPort](), func(v any) (any, error) {
		return valueAs[netip.AddrPort](v).String(), nil
	})
	add(TypeOf[netip.Prefix](), func(v any) (any, error) {
		return valueAs[netip.Prefix](v).String(), nil
	})
	add(TypeOf[url.URL](), func(v any) (any, error) {
		u := valueAs[url.URL](v)
		return u.String(), nil
	})
	add(TypeOf[*url.URL](), func(v any) (any, error) {
		return valueAs[*url.URL](v).String(), nil
	})
	add(TypeOf[*regexp.Regexp](), func(v any) (any, error) {
		return valueAs[*regexp.Regexp](v).String(), nil
	})
	add(TypeOf[json.Number](), func(v any) (any, error) {
		return encodeJSONNumber(valueAs[json.Number](v)), nil
	})
	add(TypeOf[Secret](), func(v any) (any, error) {
		return secretPlaceholder, nil
	})
	add(TypeOf[[]byte](), func(v any) (any, error) {
		return string(valueAs[[]byte](v)), nil
	})
	add(TypeOf[complex128](), func(v any) (any, error) {
		return strconv.FormatComplex(valueAs[complex128](v), 'g', -1, 128), nil
	})
	add(TypeOf[complex64](), func(v any) (any, error) {
		return strconv.FormatComplex(complex128(valueAs[complex64](v)), 'g', -1, 64), nil
	})

	return t
}

// lookup returns the converter registered for exactly t.
func (t *builtinTable) lookup(typ reflect.Type) (EncoderFunc, bool) {
	fn, ok := t.exact[typ]
	return fn, ok
}

// scan catches named variants of leaf types. Assignable matches run as a
// full pass before same-underlying-type matches so a named []byte lands on
// the []byte entry, not on net.IP, which shares its underlying type but is
// declared earlier.
func (t *builtinTable) scan(typ reflect.Type) (EncoderFunc, bool) {
	for _, entry := range t.order {
		if entry.typ == typ {
			continue
		}
		if entry.typ.Kind() == reflect.Interface {
			if typ.Implements(entry.typ) {
				return entry.fn, true
			}
			continue
		}
		if typ.AssignableTo(entry.typ) {
			return entry.fn, true
		}
	}
	for _, entry := range t.order {
		if entry.typ == typ || entry.typ.Kind() == reflect.Interface {
			continue
		}
		if typ.Kind() == entry.typ.Kind() && typ.ConvertibleTo(entry.typ) {
			return entry.fn, true
		}
	}
	return nil, false
}

// valueAs asserts v to T, converting when v arrived through an assignability
// scan under a named type.
func valueAs[T any](v any) T {
	if tv, ok := v.(T); ok {
		return tv
	}
	return reflect.ValueOf(v).Convert(TypeOf[T]()).Interface().(T)
}

// encodeDecimal encodes an exact-value decimal as an integer when no
// fractional digits are needed and as a float otherwise. NaN encodes as the
// floating-point NaN value; that fails strict JSON but is kept deliberately
// for compatibility with the legacy wire behavior.
func encodeDecimal(d *apd.Decimal) (any, error) {
	switch d.Form {
	case apd.NaN, apd.NaNSignaling:
		return math.NaN(), nil
	case apd.Infinite:
		if d.Negative {
			return math.Inf(-1), nil
		}
		return math.Inf(1), nil
	}
	var r apd.Decimal
	r.Reduce(d)
	if r.Exponent >= 0 {
		if i, err := r.Int64(); err == nil {
			return i, nil
		}
		// Integral but outside int64 range.
		f, err := r.Float64()
		if err != nil {
			return nil, err
		}
		return f, nil
	}
	f, err := d.Float64()
	if err != nil {
		return nil, err
	}
	return f, nil
}

func encodeBigInt(i *big.Int) any {
	if i.IsInt64() {
		return i.Int64()
	}
	// Preserve the exact value rather than rounding through a float.
	return i.String()
}

func encodeBigRat(r *big.Rat) any {
	if r.IsInt() {
		return encodeBigInt(r.Num())
	}
	f, _ := r.Float64()
	return f
}

func encodeJSONNumber(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
