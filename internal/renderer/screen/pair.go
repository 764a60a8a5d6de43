// Package screen holds the double-buffered frame grids and the differ that
// compares them.
package screen

import "github.com/dshills/framecore/internal/renderer/core"

// Pair is a double buffer: two same-sized grids, one mirroring the terminal
// (current) and one painted for the next frame (target), selected by a single
// index that flips after each successful emission.
type Pair struct {
	bufs   [2]*core.Buffer
	active int
}

// NewPair allocates both buffers at the given size.
func NewPair(width, height int) *Pair {
	return &Pair{
		bufs: [2]*core.Buffer{
			core.NewBuffer(width, height),
			core.NewBuffer(width, height),
		},
	}
}

// Current returns the buffer that mirrors what is on the terminal.
func (p *Pair) Current() *core.Buffer {
	return p.bufs[p.active]
}

// Target returns the inactive buffer, the one painted next.
func (p *Pair) Target() *core.Buffer {
	return p.bufs[1-p.active]
}

// Active returns the index of the current buffer (0 or 1).
func (p *Pair) Active() int {
	return p.active
}

// Flip makes the target buffer current.
func (p *Pair) Flip() {
	p.active = 1 - p.active
}

// Size returns the dimensions shared by both buffers.
func (p *Pair) Size() (width, height int) {
	return p.bufs[p.active].Size()
}

// Resize reallocates both buffers. Their contents are blank afterwards, so
// the next frame must be a full redraw rather than a diff.
func (p *Pair) Resize(width, height int) {
	p.bufs[0].Resize(width, height)
	p.bufs[1].Resize(width, height)
}
