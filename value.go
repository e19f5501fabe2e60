package godeko

import "iter"

// Text is a string-like token (string value or map key) borrowed from the
// original source buffer. Convert with string() only when an owned copy is
// required.
type Text string

func (t Text) Text() string { return string(t) }

// TextNumber preserves the verbatim text of a numeric token with no numeric
// interpretation, so arbitrary-precision literals survive a round trip
// regardless of which numeric type eventually parses them.
type TextNumber string

func (n TextNumber) Text() string { return string(n) }

// Elements presents array elements in source order. The sequence is lazy,
// finite and single-pass: consume it once. A nil element marks a slot the
// parser could not produce a value for; the parser already reported it.
type Elements = iter.Seq[Value]

// Entries presents map entries as (key, value) pairs in source order, under
// the same single-pass contract as Elements. A pair with a nil key marks an
// entry the parser could not produce. Repeated keys are not deduplicated at
// this layer; visitors that care must detect them.
type Entries = iter.Seq2[Value, Value]

// Value is the capability contract every tree node implements. Format
// adapters implement it once per node type; everything else in this package
// is format-agnostic. Nodes are only borrowed for the duration of one
// deserialize call and never mutated.
type Value interface {
	// Range reports the node's span in the original source, in byte offsets.
	Range() Range

	// Shape classifies the node into exactly one shape. Malformed nodes
	// (nodes the parser already flagged) report NoShape.
	Shape() Shape

	// Deserialize dispatches the Visit method matching the node's shape.
	// name is the logical field name this value is bound to ("" at the root);
	// it only enriches diagnostic messages. Malformed nodes return
	// (nil, false) and emit no diagnostic: the parser already reported them
	// and a second diagnostic for the same span would be noise.
	Deserialize(v Visitor, name string, d *Diagnostics) (any, bool)
}

// Visitor is implemented once per output type. Only the method matching the
// expected shape does real work; embed VisitorBase to inherit the uniform
// "incorrect type" default for every other shape.
type Visitor interface {
	// Expected reports the shapes this visitor accepts.
	Expected() Shape

	VisitBool(value bool, rng Range, name string, d *Diagnostics) (any, bool)
	VisitNull(rng Range, name string, d *Diagnostics) (any, bool)
	VisitNumber(value TextNumber, rng Range, name string, d *Diagnostics) (any, bool)
	VisitStr(value Text, rng Range, name string, d *Diagnostics) (any, bool)
	VisitArray(elements Elements, rng Range, name string, d *Diagnostics) (any, bool)
	VisitMap(entries Entries, rng Range, name string, d *Diagnostics) (any, bool)
}

// VisitorBase supplies the default behavior for every Visit method: push an
// incorrect-type diagnostic against Expect and fail. This is what keeps type
// errors uniform across built-in and user-defined types.
type VisitorBase struct{ Expect Shape }

func (b VisitorBase) Expected() Shape { return b.Expect }

func (b VisitorBase) mismatch(found Shape, rng Range, d *Diagnostics) (any, bool) {
	d.Push(NewIncorrectType(b.Expect, found, rng))
	return nil, false
}

func (b VisitorBase) VisitBool(_ bool, rng Range, _ string, d *Diagnostics) (any, bool) {
	return b.mismatch(BoolShape, rng, d)
}

func (b VisitorBase) VisitNull(rng Range, _ string, d *Diagnostics) (any, bool) {
	return b.mismatch(NullShape, rng, d)
}

func (b VisitorBase) VisitNumber(_ TextNumber, rng Range, _ string, d *Diagnostics) (any, bool) {
	return b.mismatch(NumberShape, rng, d)
}

func (b VisitorBase) VisitStr(_ Text, rng Range, _ string, d *Diagnostics) (any, bool) {
	return b.mismatch(StrShape, rng, d)
}

func (b VisitorBase) VisitArray(_ Elements, rng Range, _ string, d *Diagnostics) (any, bool) {
	return b.mismatch(ArrayShape, rng, d)
}

func (b VisitorBase) VisitMap(_ Entries, rng Range, _ string, d *Diagnostics) (any, bool) {
	return b.mismatch(MapShape, rng, d)
}

// Decoder is the output-type contract: it builds one value of type T from a
// tree value. Every defect is pushed onto d; ok is false when no value could
// be built. A false return never aborts siblings, the caller just moves on.
type Decoder[T any] interface {
	Decode(value Value, name string, d *Diagnostics) (T, bool)
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc[T any] func(value Value, name string, d *Diagnostics) (T, bool)

func (f DecoderFunc[T]) Decode(value Value, name string, d *Diagnostics) (T, bool) {
	return f(value, name, d)
}

// visit dispatches the visitor through the value and narrows the output.
func visit[T any](value Value, v Visitor, name string, d *Diagnostics) (T, bool) {
	out, ok := value.Deserialize(v, name, d)
	if !ok {
		var zero T
		return zero, false
	}
	return out.(T), true
}
