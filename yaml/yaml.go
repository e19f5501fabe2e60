// Package yaml binds the godeko deserialization contracts to YAML documents
// parsed by gopkg.in/yaml.v3. Only the Value abstraction is implemented here;
// every visitor and decoder from the root package applies unchanged.
package yaml

import (
	godeko "github.com/reoring/godeko"
	goyaml "gopkg.in/yaml.v3"
)

// Deserialize parses source as a single YAML document and deserializes its
// root node into the type built by dec. Parse failures become parse_error
// diagnostics ahead of any deserialization diagnostics.
func Deserialize[T any](source string, dec godeko.Decoder[T]) godeko.Deserialized[T] {
	var zero T
	var doc goyaml.Node
	if err := goyaml.Unmarshal([]byte(source), &doc); err != nil {
		diags := godeko.Diagnostics{godeko.NewParseError(err.Error(), godeko.Range{})}
		return godeko.NewDeserialized(zero, false, diags)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		diags := godeko.Diagnostics{godeko.NewParseError("empty document", godeko.Range{})}
		return godeko.NewDeserialized(zero, false, diags)
	}

	idx := newLineIndex(source)
	root := &value{node: doc.Content[0], idx: idx}

	var diags godeko.Diagnostics
	v, ok := dec.Decode(root, "", &diags)
	for i := range diags {
		diags[i].InputFragment = fragment(source, diags[i].Range)
	}
	return godeko.NewDeserialized(v, ok, diags)
}

// value adapts one yaml.Node to the godeko.Value contract.
type value struct {
	node *goyaml.Node
	idx  *lineIndex
}

// resolved follows alias nodes to their anchor.
func (v *value) resolved() *goyaml.Node {
	n := v.node
	for n.Kind == goyaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func (v *value) Range() godeko.Range {
	start := v.idx.offset(v.node.Line, v.node.Column)
	return godeko.Range{Start: start, End: v.end(v.resolved(), start)}
}

// end approximates the node's end offset: scalars span their text, containers
// extend to their last child's end.
func (v *value) end(n *goyaml.Node, start int) int {
	switch n.Kind {
	case goyaml.ScalarNode:
		return start + len(n.Value)
	case goyaml.MappingNode, goyaml.SequenceNode:
		end := start
		for _, c := range n.Content {
			cs := v.idx.offset(c.Line, c.Column)
			if ce := v.end(c, cs); ce > end {
				end = ce
			}
		}
		return end
	default:
		return start
	}
}

func (v *value) Shape() godeko.Shape {
	n := v.resolved()
	switch n.Kind {
	case goyaml.MappingNode:
		return godeko.MapShape
	case goyaml.SequenceNode:
		return godeko.ArrayShape
	case goyaml.ScalarNode:
		switch n.Tag {
		case "!!bool":
			return godeko.BoolShape
		case "!!int", "!!float":
			return godeko.NumberShape
		case "!!null":
			return godeko.NullShape
		default:
			return godeko.StrShape
		}
	default:
		return godeko.NoShape
	}
}

func (v *value) Deserialize(vis godeko.Visitor, name string, d *godeko.Diagnostics) (any, bool) {
	n := v.resolved()
	rng := v.Range()
	switch n.Kind {
	case goyaml.MappingNode:
		entries := func(yield func(godeko.Value, godeko.Value) bool) {
			for i := 0; i+1 < len(n.Content); i += 2 {
				k := &value{node: n.Content[i], idx: v.idx}
				val := &value{node: n.Content[i+1], idx: v.idx}
				if !yield(k, val) {
					return
				}
			}
		}
		return vis.VisitMap(entries, rng, name, d)
	case goyaml.SequenceNode:
		elements := func(yield func(godeko.Value) bool) {
			for _, c := range n.Content {
				if !yield(&value{node: c, idx: v.idx}) {
					return
				}
			}
		}
		return vis.VisitArray(elements, rng, name, d)
	case goyaml.ScalarNode:
		switch n.Tag {
		case "!!bool":
			return vis.VisitBool(n.Value == "true" || n.Value == "True" || n.Value == "TRUE", rng, name, d)
		case "!!int", "!!float":
			return vis.VisitNumber(godeko.TextNumber(n.Value), rng, name, d)
		case "!!null":
			return vis.VisitNull(rng, name, d)
		default:
			return vis.VisitStr(godeko.Text(n.Value), rng, name, d)
		}
	default:
		// An unresolvable node; the yaml parser rejected the document forms
		// that would produce one, so stay silent like other bogus nodes.
		return nil, false
	}
}

// lineIndex converts 1-based line/column positions into byte offsets.
type lineIndex struct {
	starts []int
	size   int
}

func newLineIndex(source string) *lineIndex {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &lineIndex{starts: starts, size: len(source)}
}

func (x *lineIndex) offset(line, column int) int {
	if line < 1 {
		return 0
	}
	if line > len(x.starts) {
		return x.size
	}
	off := x.starts[line-1] + column - 1
	if off > x.size {
		off = x.size
	}
	if off < 0 {
		off = 0
	}
	return off
}

const maxFragment = 60

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
