package godeko

// Deserialized pairs a possibly-absent deserialized value with the ordered
// diagnostics collected while building it. A format adapter entry point
// constructs it once; it is never mutated afterward. The value may be present
// even when error diagnostics exist (a best-effort partial result); callers
// that need certainty should check HasErrors first.
type Deserialized[T any] struct {
	value       T
	ok          bool
	diagnostics Diagnostics
}

// NewDeserialized assembles a result container. Format adapters call this;
// most code only consumes one.
func NewDeserialized[T any](value T, ok bool, diagnostics Diagnostics) Deserialized[T] {
	return Deserialized[T]{value: value, ok: ok, diagnostics: diagnostics}
}

// Value returns the deserialized value when one was built.
func (r Deserialized[T]) Value() (T, bool) { return r.value, r.ok }

// Diagnostics returns every diagnostic in the order it was raised:
// parse-phase diagnostics first, deserialization diagnostics after.
func (r Deserialized[T]) Diagnostics() Diagnostics { return r.diagnostics }

// HasErrors reports whether any diagnostic carries Error severity.
func (r Deserialized[T]) HasErrors() bool { return r.diagnostics.HasErrors() }

// Consume returns the value together with the diagnostics as an error
// (nil when none were raised).
func (r Deserialized[T]) Consume() (T, error) {
	if len(r.diagnostics) == 0 {
		return r.value, nil
	}
	return r.value, r.diagnostics
}
