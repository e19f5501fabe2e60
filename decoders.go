package godeko

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"fortio.org/safecast"
)

// Bool returns the Decoder for boolean values.
func Bool() Decoder[bool] {
	return DecoderFunc[bool](func(value Value, name string, d *Diagnostics) (bool, bool) {
		return visit[bool](value, boolVisitor{VisitorBase{Expect: BoolShape}}, name, d)
	})
}

type boolVisitor struct{ VisitorBase }

func (boolVisitor) VisitBool(value bool, _ Range, _ string, _ *Diagnostics) (any, bool) {
	return value, true
}

// String returns the Decoder producing an owned string from a string token.
func String() Decoder[string] {
	return DecoderFunc[string](func(value Value, name string, d *Diagnostics) (string, bool) {
		return visit[string](value, stringVisitor{VisitorBase{Expect: StrShape}}, name, d)
	})
}

type stringVisitor struct{ VisitorBase }

func (stringVisitor) VisitStr(value Text, _ Range, _ string, _ *Diagnostics) (any, bool) {
	return string(value), true
}

// Number returns the Decoder preserving the verbatim numeric token text.
// Use it when the exact textual representation must round-trip rather than
// be parsed into a machine number.
func Number() Decoder[TextNumber] {
	return DecoderFunc[TextNumber](func(value Value, name string, d *Diagnostics) (TextNumber, bool) {
		return visit[TextNumber](value, numberVisitor{VisitorBase{Expect: NumberShape}}, name, d)
	})
}

type numberVisitor struct{ VisitorBase }

func (numberVisitor) VisitNumber(value TextNumber, _ Range, _ string, _ *Diagnostics) (any, bool) {
	return value, true
}

// Int returns a range-checked Decoder for the integer type T. A literal
// outside T's domain fails with an out_of_range diagnostic naming the valid
// range; it never saturates or truncates.
func Int[T safecast.Integer]() Decoder[T] { return intDecoder[T]{} }

// NonZeroInt is Int with the additional constraint that zero is rejected.
func NonZeroInt[T safecast.Integer]() Decoder[T] { return intDecoder[T]{nonZero: true} }

type intDecoder[T safecast.Integer] struct{ nonZero bool }

func (dec intDecoder[T]) Decode(value Value, name string, d *Diagnostics) (T, bool) {
	v := intVisitor[T]{VisitorBase: VisitorBase{Expect: NumberShape}, nonZero: dec.nonZero}
	return visit[T](value, v, name, d)
}

type intVisitor[T safecast.Integer] struct {
	VisitorBase
	nonZero bool
}

func (v intVisitor[T]) VisitNumber(value TextNumber, rng Range, _ string, d *Diagnostics) (any, bool) {
	out, err := parseInteger[T](string(value))
	if err != nil || (v.nonZero && out == 0) {
		d.Push(intOutOfRange[T](value, rng, v.nonZero))
		return nil, false
	}
	return out, true
}

func parseInteger[T safecast.Integer](text string) (T, error) {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return safecast.Conv[T](i)
	}
	// Positive literals beyond int64 still fit the widest unsigned types.
	u, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, err
	}
	return safecast.Conv[T](u)
}

func intOutOfRange[T safecast.Integer](got TextNumber, rng Range, nonZero bool) Diagnostic {
	var zero T
	t := reflect.TypeOf(zero)
	bits := t.Bits()
	var min, max string
	switch t.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		min = "0"
		max = strconv.FormatUint(^uint64(0)>>(64-bits), 10)
	default:
		min = strconv.FormatInt(int64(-1)<<(bits-1), 10)
		max = strconv.FormatInt(int64(^uint64(0)>>(64-bits+1)), 10)
	}
	if nonZero && min == "0" {
		min = "1"
	}
	diag := NewOutOfRange(string(got), t.String(), min, max, rng)
	if nonZero {
		diag.Hint = "zero is not allowed"
	}
	return diag
}

// Float returns the Decoder for the float type T with standard decimal
// semantics. Overlarge literals round to infinity rather than fail: decimal
// literals have no meaningful out-of-range for floats.
func Float[T safecast.Float]() Decoder[T] {
	return DecoderFunc[T](func(value Value, name string, d *Diagnostics) (T, bool) {
		return visit[T](value, floatVisitor[T]{VisitorBase{Expect: NumberShape}}, name, d)
	})
}

type floatVisitor[T safecast.Float] struct{ VisitorBase }

func (floatVisitor[T]) VisitNumber(value TextNumber, rng Range, _ string, d *Diagnostics) (any, bool) {
	var zero T
	f, err := strconv.ParseFloat(string(value), reflect.TypeOf(zero).Bits())
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		d.Push(NewParseError(fmt.Sprintf("cannot parse %q as a number", string(value)), rng))
		return nil, false
	}
	return T(f), true
}

// Optional wraps inner so that a null node yields a nil pointer with no
// diagnostic. A field that is absent altogether is the enclosing map
// visitor's concern, not this wrapper's.
func Optional[T any](inner Decoder[T]) Decoder[*T] {
	return DecoderFunc[*T](func(value Value, name string, d *Diagnostics) (*T, bool) {
		if value.Shape() == NullShape {
			return nil, true
		}
		v, ok := inner.Decode(value, name, d)
		if !ok {
			return nil, false
		}
		return &v, true
	})
}

// Slice returns the Decoder for an ordered sequence of elem. Elements that
// fail to deserialize are dropped; the remaining elements are unaffected.
func Slice[T any](elem Decoder[T]) Decoder[[]T] {
	return DecoderFunc[[]T](func(value Value, name string, d *Diagnostics) ([]T, bool) {
		v := sliceVisitor[T]{VisitorBase: VisitorBase{Expect: ArrayShape}, elem: elem}
		return visit[[]T](value, v, name, d)
	})
}

type sliceVisitor[T any] struct {
	VisitorBase
	elem Decoder[T]
}

func (v sliceVisitor[T]) VisitArray(elements Elements, _ Range, name string, d *Diagnostics) (any, bool) {
	out := []T{}
	for el := range elements {
		if el == nil {
			// the parser already reported the gap
			continue
		}
		if item, ok := v.elem.Decode(el, name, d); ok {
			out = append(out, item)
		}
	}
	return out, true
}

// Set returns the Decoder for an unordered set of elem. Duplicate source
// values collapse by the map's insertion rule.
func Set[T comparable](elem Decoder[T]) Decoder[map[T]struct{}] {
	return DecoderFunc[map[T]struct{}](func(value Value, name string, d *Diagnostics) (map[T]struct{}, bool) {
		v := setVisitor[T]{VisitorBase: VisitorBase{Expect: ArrayShape}, elem: elem}
		return visit[map[T]struct{}](value, v, name, d)
	})
}

type setVisitor[T comparable] struct {
	VisitorBase
	elem Decoder[T]
}

func (v setVisitor[T]) VisitArray(elements Elements, _ Range, name string, d *Diagnostics) (any, bool) {
	out := map[T]struct{}{}
	for el := range elements {
		if el == nil {
			continue
		}
		if item, ok := v.elem.Decode(el, name, d); ok {
			out[item] = struct{}{}
		}
	}
	return out, true
}

// OrderedSetOf returns the Decoder for an insertion-ordered set of elem.
func OrderedSetOf[T comparable](elem Decoder[T]) Decoder[*OrderedSet[T]] {
	return DecoderFunc[*OrderedSet[T]](func(value Value, name string, d *Diagnostics) (*OrderedSet[T], bool) {
		v := orderedSetVisitor[T]{VisitorBase: VisitorBase{Expect: ArrayShape}, elem: elem}
		return visit[*OrderedSet[T]](value, v, name, d)
	})
}

type orderedSetVisitor[T comparable] struct {
	VisitorBase
	elem Decoder[T]
}

func (v orderedSetVisitor[T]) VisitArray(elements Elements, _ Range, name string, d *Diagnostics) (any, bool) {
	out := NewOrderedSet[T]()
	for el := range elements {
		if el == nil {
			continue
		}
		if item, ok := v.elem.Decode(el, name, d); ok {
			out.Add(item)
		}
	}
	return out, true
}

// Map returns the Decoder for an unordered string-keyed map. Entries whose
// key or value fails to deserialize are dropped; repeated keys follow
// last-write-wins, the map's natural insertion rule.
func Map[V any](value Decoder[V]) Decoder[map[string]V] {
	return DecoderFunc[map[string]V](func(v Value, name string, d *Diagnostics) (map[string]V, bool) {
		vis := mapVisitor[V]{VisitorBase: VisitorBase{Expect: MapShape}, value: value}
		return visit[map[string]V](v, vis, name, d)
	})
}

type mapVisitor[V any] struct {
	VisitorBase
	value Decoder[V]
}

func (v mapVisitor[V]) VisitMap(entries Entries, _ Range, _ string, d *Diagnostics) (any, bool) {
	out := map[string]V{}
	for key, val := range entries {
		if key == nil || val == nil {
			continue
		}
		name, ok := String().Decode(key, "", d)
		if !ok {
			continue
		}
		if item, ok := v.value.Decode(val, name, d); ok {
			out[name] = item
		}
	}
	return out, true
}

// OrderedMapOf returns the Decoder for a source-ordered string-keyed map.
// Repeated keys keep their first position and the last value, the
// OrderedMap insertion rule.
func OrderedMapOf[V any](value Decoder[V]) Decoder[*OrderedMap[V]] {
	return DecoderFunc[*OrderedMap[V]](func(v Value, name string, d *Diagnostics) (*OrderedMap[V], bool) {
		vis := orderedMapVisitor[V]{VisitorBase: VisitorBase{Expect: MapShape}, value: value}
		return visit[*OrderedMap[V]](v, vis, name, d)
	})
}

type orderedMapVisitor[V any] struct {
	VisitorBase
	value Decoder[V]
}

func (v orderedMapVisitor[V]) VisitMap(entries Entries, _ Range, _ string, d *Diagnostics) (any, bool) {
	out := NewOrderedMap[V]()
	for key, val := range entries {
		if key == nil || val == nil {
			continue
		}
		name, ok := String().Decode(key, "", d)
		if !ok {
			continue
		}
		if item, ok := v.value.Decode(val, name, d); ok {
			out.Set(name, item)
		}
	}
	return out, true
}

// Any returns a passthrough Decoder accepting every shape. Booleans map to
// bool, numbers to TextNumber, strings to string, null to nil, arrays to
// []any and objects to *OrderedMap[any] so source order survives.
func Any() Decoder[any] {
	return DecoderFunc[any](func(value Value, name string, d *Diagnostics) (any, bool) {
		return value.Deserialize(anyVisitor{VisitorBase{Expect: AnyShape}}, name, d)
	})
}

type anyVisitor struct{ VisitorBase }

func (anyVisitor) VisitBool(value bool, _ Range, _ string, _ *Diagnostics) (any, bool) {
	return value, true
}

func (anyVisitor) VisitNull(_ Range, _ string, _ *Diagnostics) (any, bool) {
	return nil, true
}

func (anyVisitor) VisitNumber(value TextNumber, _ Range, _ string, _ *Diagnostics) (any, bool) {
	return value, true
}

func (anyVisitor) VisitStr(value Text, _ Range, _ string, _ *Diagnostics) (any, bool) {
	return string(value), true
}

func (anyVisitor) VisitArray(elements Elements, _ Range, name string, d *Diagnostics) (any, bool) {
	out := []any{}
	for el := range elements {
		if el == nil {
			continue
		}
		if item, ok := Any().Decode(el, name, d); ok {
			out = append(out, item)
		}
	}
	return out, true
}

func (anyVisitor) VisitMap(entries Entries, _ Range, _ string, d *Diagnostics) (any, bool) {
	out := NewOrderedMap[any]()
	for key, val := range entries {
		if key == nil || val == nil {
			continue
		}
		name, ok := String().Decode(key, "", d)
		if !ok {
			continue
		}
		if item, ok := Any().Decode(val, name, d); ok {
			out.Set(name, item)
		}
	}
	return out, true
}

// Unit returns a Decoder that never produces a value: every shape fails with
// an incorrect-type diagnostic against "no value". Use it to assert that a
// source must not be treated as structured data at all.
func Unit() Decoder[struct{}] {
	return DecoderFunc[struct{}](func(value Value, name string, d *Diagnostics) (struct{}, bool) {
		return visit[struct{}](value, VisitorBase{Expect: NoShape}, name, d)
	})
}
