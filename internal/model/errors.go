package model

import (
	"fmt"

	"github.com/nikbrunner/lister/internal/surface"
)

// PositionError is returned when a position does not resolve to an item.
type PositionError struct {
	Pos Position
}

func (e PositionError) Error() string {
	return fmt.Sprintf("no item at position %s", e.Pos)
}

// VisibilityError is returned when focus is moved onto a hidden item.
type VisibilityError struct {
	Anchor surface.Anchor
}

func (e VisibilityError) Error() string {
	return fmt.Sprintf("item %s is hidden", string(e.Anchor))
}

// RangeError is returned for a numeric index outside [0, Len).
type RangeError struct {
	Index int
	Len   int
}

func (e RangeError) Error() string {
	return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
}

// StructureError is returned when an operation would have to move an item
// across incompatible levels.
type StructureError struct {
	Op     string
	Anchor surface.Anchor
	Reason string
}

func (e StructureError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, string(e.Anchor), e.Reason)
}

// SequenceTypeError is returned for sequence input that is not a slice or array.
type SequenceTypeError struct {
	Value any
}

func (e SequenceTypeError) Error() string {
	return fmt.Sprintf("not a sequence: %T", e.Value)
}
