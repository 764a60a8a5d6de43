package core

// Change is a single differing cell found by the differ.
type Change struct {
	X, Y int
	Cell Cell
}
