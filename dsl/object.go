// Package dsl builds object decoders for user-defined aggregates: a fixed
// allow-list of keys, each bound to a field of the target struct, with
// unknown-key and missing-key diagnostics raised per defect while every
// recognized sibling keeps deserializing.
package dsl

import (
	"sort"

	godeko "github.com/reoring/godeko"
)

// FieldAdapter binds one recognized key to a field of T.
type FieldAdapter[T any] struct {
	decode func(target *T, value godeko.Value, name string, d *godeko.Diagnostics) bool
}

// Bind couples a Decoder for the field's type with the assignment into T.
// When the field value fails to deserialize the assignment is skipped; the
// decoder has already pushed the diagnostics.
func Bind[T, F any](dec godeko.Decoder[F], assign func(*T, F)) FieldAdapter[T] {
	return FieldAdapter[T]{decode: func(target *T, value godeko.Value, name string, d *godeko.Diagnostics) bool {
		v, ok := dec.Decode(value, name, d)
		if !ok {
			return false
		}
		assign(target, v)
		return true
	}}
}

// Builder assembles an object Decoder field by field.
type Builder[T any] struct {
	fields       map[string]FieldAdapter[T]
	required     map[string]struct{}
	allowUnknown bool
}

// Object creates a builder with safe defaults: unknown keys are rejected.
func Object[T any]() *Builder[T] {
	return &Builder[T]{
		fields:   map[string]FieldAdapter[T]{},
		required: map[string]struct{}{},
	}
}

// Field registers a recognized key with its adapter.
func (b *Builder[T]) Field(name string, ad FieldAdapter[T]) *Builder[T] {
	b.fields[name] = ad
	return b
}

// Require marks one or more fields as required.
func (b *Builder[T]) Require(names ...string) *Builder[T] {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// AllowUnknown drops unknown keys silently instead of diagnosing them.
func (b *Builder[T]) AllowUnknown() *Builder[T] {
	b.allowUnknown = true
	return b
}

// Build returns the object Decoder. The allow-list is sorted once here so
// unknown-key diagnostics are deterministic without per-decode sorting.
func (b *Builder[T]) Build() godeko.Decoder[T] {
	keys := make([]string, 0, len(b.fields))
	for k := range b.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return objectDecoder[T]{
		fields:       b.fields,
		required:     b.required,
		allowUnknown: b.allowUnknown,
		sortedKeys:   keys,
	}
}

type objectDecoder[T any] struct {
	fields       map[string]FieldAdapter[T]
	required     map[string]struct{}
	allowUnknown bool
	sortedKeys   []string
}

func (o objectDecoder[T]) Decode(value godeko.Value, name string, d *godeko.Diagnostics) (T, bool) {
	vis := objectVisitor[T]{VisitorBase: godeko.VisitorBase{Expect: godeko.MapShape}, dec: o}
	out, ok := value.Deserialize(vis, name, d)
	if !ok {
		var zero T
		return zero, false
	}
	return out.(T), true
}

type objectVisitor[T any] struct {
	godeko.VisitorBase
	dec objectDecoder[T]
}

func (v objectVisitor[T]) VisitMap(entries godeko.Entries, rng godeko.Range, _ string, d *godeko.Diagnostics) (any, bool) {
	var out T
	var seen map[string]struct{}
	if len(v.dec.required) > 0 {
		seen = make(map[string]struct{}, len(v.dec.required))
	}
	for key, val := range entries {
		if key == nil || val == nil {
			// the parser already reported this entry
			continue
		}
		keyText, ok := godeko.String().Decode(key, "", d)
		if !ok {
			continue
		}
		ad, known := v.dec.fields[keyText]
		if !known {
			if !v.dec.allowUnknown {
				d.Push(godeko.NewUnknownKey(keyText, v.dec.sortedKeys, key.Range()))
			}
			continue
		}
		if seen != nil {
			seen[keyText] = struct{}{}
		}
		// a failed field never aborts the remaining entries
		ad.decode(&out, val, keyText, d)
	}
	missing := make([]string, 0)
	for k := range v.dec.required {
		if _, ok := seen[k]; !ok {
			missing = append(missing, k)
		}
	}
	sort.Strings(missing)
	for _, k := range missing {
		d.Push(godeko.NewMissingKey(k, rng))
	}
	return out, true
}
