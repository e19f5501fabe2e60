package godeko

import "strings"

// Shape is a bitset over the coarse kinds a tree value can take. Visitors
// declare the shapes they accept; values report the shape they carry.
type Shape uint8

const (
	BoolShape Shape = 1 << iota
	NullShape
	NumberShape
	StrShape
	ArrayShape
	MapShape
)

// NoShape is the zero Shape; it reads as "no value".
const NoShape Shape = 0

// AnyShape accepts every shape.
const AnyShape = BoolShape | NullShape | NumberShape | StrShape | ArrayShape | MapShape

// Has reports whether every bit of other is set in s.
func (s Shape) Has(other Shape) bool { return s&other == other && other != NoShape }

// String renders the shape set for mismatch messages, e.g. "null or a number".
func (s Shape) String() string {
	if s == NoShape {
		return "no value"
	}
	parts := make([]string, 0, 6)
	if s&NullShape != 0 {
		parts = append(parts, "null")
	}
	if s&BoolShape != 0 {
		parts = append(parts, "a boolean")
	}
	if s&NumberShape != 0 {
		parts = append(parts, "a number")
	}
	if s&StrShape != 0 {
		parts = append(parts, "a string")
	}
	if s&ArrayShape != 0 {
		parts = append(parts, "an array")
	}
	if s&MapShape != 0 {
		parts = append(parts, "an object")
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}
