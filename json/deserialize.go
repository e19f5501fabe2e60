package json

import (
	godeko "github.com/reoring/godeko"
)

// Deserialize parses source and deserializes the root value into the type
// built by dec. The returned diagnostics hold every parse-phase diagnostic
// first, then every deserialization diagnostic, each of the latter annotated
// with the offending source fragment for snippet rendering. The order is
// fixed: parse errors conceptually precede semantic ones.
func Deserialize[T any](source string, dec godeko.Decoder[T], opts Options) godeko.Deserialized[T] {
	root := Parse(source, opts)
	result := DeserializeRoot(root, dec)

	deser := result.Diagnostics()
	merged := make(godeko.Diagnostics, 0, len(root.Diagnostics())+len(deser))
	merged = append(merged, root.Diagnostics()...)
	for _, diag := range deser {
		diag.InputFragment = fragment(source, diag.Range)
		merged = append(merged, diag)
	}

	value, ok := result.Value()
	return godeko.NewDeserialized(value, ok, merged)
}

// DeserializeRoot deserializes an already-parsed tree. A malformed or missing
// root yields no value and no extra diagnostic: the parse diagnostics on the
// Root already report it.
func DeserializeRoot[T any](root *Root, dec godeko.Decoder[T]) godeko.Deserialized[T] {
	node, ok := root.Value()
	if !ok {
		var zero T
		return godeko.NewDeserialized(zero, false, nil)
	}
	var diags godeko.Diagnostics
	value, ok := dec.Decode(node, "", &diags)
	return godeko.NewDeserialized(value, ok, diags)
}

const maxFragment = 60

// fragment slices the offending source span, capped for display.
func fragment(source string, rng godeko.Range) string {
	start, end := rng.Start, rng.End
	if start < 0 {
		start = 0
	}
	if end > len(source) {
		end = len(source)
	}
	if start >= end {
		return ""
	}
	if end-start > maxFragment {
		end = start + maxFragment
	}
	return source[start:end]
}
