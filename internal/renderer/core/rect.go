package core

import "fmt"

// Rect is an axis-aligned rectangle in cell coordinates.
// It is both the unit of layout output and the unit of dirtiness.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a rectangle from position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int { return r.Y + r.H }

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns the number of cells covered.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.W * r.H
}

// Contains returns true if (x, y) is within the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsRect returns true if other is entirely within r.
func (r Rect) ContainsRect(other Rect) bool {
	if other.IsEmpty() {
		return true
	}
	return other.X >= r.X && other.Right() <= r.Right() &&
		other.Y >= r.Y && other.Bottom() <= r.Bottom()
}

// Intersects returns true if two rectangles overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.X < other.Right() && other.X < r.Right() &&
		r.Y < other.Bottom() && other.Y < r.Bottom()
}

// Adjacent returns true if the rectangles share a full edge, so that
// their bounding box covers exactly their union.
func (r Rect) Adjacent(other Rect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	if r.Y == other.Y && r.H == other.H {
		return r.Right() == other.X || other.Right() == r.X
	}
	if r.X == other.X && r.W == other.W {
		return r.Bottom() == other.Y || other.Bottom() == r.Y
	}
	return false
}

// Intersection returns the overlapping region of two rectangles.
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	x := max(r.X, other.X)
	y := max(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: min(r.Right(), other.Right()) - x,
		H: min(r.Bottom(), other.Bottom()) - y,
	}
}

// Union returns the smallest rectangle containing both rectangles.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	x := min(r.X, other.X)
	y := min(r.Y, other.Y)
	return Rect{
		X: x,
		Y: y,
		W: max(r.Right(), other.Right()) - x,
		H: max(r.Bottom(), other.Bottom()) - y,
	}
}

// Inset returns a rectangle shrunk by the given amounts, never negative.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	out := Rect{
		X: r.X + left,
		Y: r.Y + top,
		W: r.W - left - right,
		H: r.H - top - bottom,
	}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// String returns a compact representation for logs and test failures.
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}
