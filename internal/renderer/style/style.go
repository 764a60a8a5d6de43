// Package style models element styles: the declared properties an element
// carries and the resolved result after cascading from its parent and the
// theme.
package style

import (
	"fmt"

	"github.com/dshills/framecore/internal/renderer/core"
)

// Direction is the main axis along which a box lays out its children.
type Direction uint8

const (
	// Column stacks children top to bottom.
	Column Direction = iota
	// Row places children left to right.
	Row
)

// String returns the string representation of the direction.
func (d Direction) String() string {
	switch d {
	case Column:
		return "column"
	case Row:
		return "row"
	default:
		return "unknown"
	}
}

// Edges holds per-side sizes in cells.
type Edges struct {
	Top, Right, Bottom, Left int
}

// Uniform returns edges with the same size on every side.
func Uniform(n int) Edges {
	return Edges{Top: n, Right: n, Bottom: n, Left: n}
}

// Box holds the geometry properties consumed by the layout solver.
type Box struct {
	Direction Direction

	// Width and Height are fixed sizes in cells; 0 means auto.
	Width, Height int

	// Grow is the share of remaining main-axis space given to an auto-sized
	// child. Zero is treated as 1.
	Grow int

	Padding Edges
	Border  bool

	// Gap is the space between consecutive children on the main axis.
	Gap int
}

// Inner returns the content rectangle of a box placed at r.
func (b Box) Inner(r core.Rect) core.Rect {
	if b.Border {
		r = r.Inset(1, 1, 1, 1)
	}
	return r.Inset(b.Padding.Top, b.Padding.Right, b.Padding.Bottom, b.Padding.Left)
}

// Style is the set of properties an element declares.
// Zero-valued colours inherit from the parent.
type Style struct {
	Foreground core.Color
	Background core.Color

	// Attributes are added to the inherited attribute set.
	Attributes core.Attribute
	// ClearAttributes are removed from the inherited attribute set.
	ClearAttributes core.Attribute

	Box Box
}

// Resolved is a fully cascaded style.
type Resolved struct {
	Pen core.Style
	Box Box
}

// String returns a compact description for logs and test failures.
func (r Resolved) String() string {
	return fmt.Sprintf("fg=%v bg=%v attrs=%v", r.Pen.Foreground, r.Pen.Background, r.Pen.Attributes)
}
