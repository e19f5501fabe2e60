// Package json binds the godeko deserialization contracts to a JSON syntax
// tree. It parses raw text into a lossy-tolerant tree of nodes, implements
// the Value abstraction for them, and merges parse-phase diagnostics with
// deserialization diagnostics.
package json

import (
	godeko "github.com/reoring/godeko"
)

// NodeKind enumerates the tree node variants.
type NodeKind int

const (
	// KindBogus marks a node the parser could not make sense of. The parse
	// diagnostics already describe it; deserialization stays silent about it.
	KindBogus NodeKind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Member is one object entry. Value is nil when the member's value could not
// be parsed; the parse diagnostics already cover the gap.
type Member struct {
	Key   *Node
	Value *Node
}

// Node is one node of the parsed JSON tree. Nodes are immutable after Parse
// returns; deserialization only borrows them.
type Node struct {
	kind    NodeKind
	rng     godeko.Range
	boolean bool
	text    string // verbatim number text, or decoded string text
	elems   []*Node
	members []Member
}

func (n *Node) Kind() NodeKind { return n.kind }

func (n *Node) Range() godeko.Range { return n.rng }

func (n *Node) Shape() godeko.Shape {
	switch n.kind {
	case KindNull:
		return godeko.NullShape
	case KindBool:
		return godeko.BoolShape
	case KindNumber:
		return godeko.NumberShape
	case KindString:
		return godeko.StrShape
	case KindArray:
		return godeko.ArrayShape
	case KindObject:
		return godeko.MapShape
	default:
		return godeko.NoShape
	}
}

// Deserialize translates the node variant into the matching visitor call.
// Object member keys are string nodes themselves, so key text flows through
// the same string deserialization path as ordinary values.
func (n *Node) Deserialize(v godeko.Visitor, name string, d *godeko.Diagnostics) (any, bool) {
	switch n.kind {
	case KindBogus:
		// The parser already emitted an error for this node; another
		// diagnostic for the same span would be a duplicate.
		return nil, false
	case KindNull:
		return v.VisitNull(n.rng, name, d)
	case KindBool:
		return v.VisitBool(n.boolean, n.rng, name, d)
	case KindNumber:
		return v.VisitNumber(godeko.TextNumber(n.text), n.rng, name, d)
	case KindString:
		return v.VisitStr(godeko.Text(n.text), n.rng, name, d)
	case KindArray:
		return v.VisitArray(n.elements(), n.rng, name, d)
	case KindObject:
		return v.VisitMap(n.entries(), n.rng, name, d)
	default:
		return nil, false
	}
}

func (n *Node) elements() godeko.Elements {
	return func(yield func(godeko.Value) bool) {
		for _, el := range n.elems {
			var value godeko.Value
			if el != nil {
				value = el
			}
			if !yield(value) {
				return
			}
		}
	}
}

func (n *Node) entries() godeko.Entries {
	return func(yield func(godeko.Value, godeko.Value) bool) {
		for _, m := range n.members {
			if m.Key == nil || m.Value == nil {
				if !yield(nil, nil) {
					return
				}
				continue
			}
			if !yield(m.Key, m.Value) {
				return
			}
		}
	}
}
