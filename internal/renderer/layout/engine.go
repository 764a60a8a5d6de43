// Package layout solves box geometry for the element tree. Nodes live in a
// flat arena indexed by core.NodeID and mirror the DOM's parent/child
// structure; Compute assigns every reachable node a rectangle.
package layout

import (
	"errors"
	"fmt"

	"github.com/dshills/framecore/internal/renderer/core"
	"github.com/dshills/framecore/internal/renderer/style"
)

// ErrUnknownNode is returned for ids that were never inserted.
var ErrUnknownNode = errors.New("unknown layout node")

type node struct {
	present  bool
	box      style.Box
	children []core.NodeID
	rect     core.Rect
	// placed is the Compute generation that last assigned rect.
	placed uint64
}

// Engine is a box layout solver.
type Engine struct {
	nodes []node
	count int
	gen   uint64

	// moved holds the old and new rectangles of nodes whose geometry
	// changed during the last Compute.
	moved []core.Rect
}

// New creates an empty layout engine.
func New() *Engine {
	return &Engine{}
}

// Clear removes every node. Last computed rectangles are remembered so that
// MovedRects after a rebuild reports only real geometry changes.
func (e *Engine) Clear() {
	for i := range e.nodes {
		e.nodes[i] = node{rect: e.nodes[i].rect, placed: e.nodes[i].placed}
	}
	e.count = 0
	e.moved = e.moved[:0]
}

// Len returns the number of nodes.
func (e *Engine) Len() int {
	return e.count
}

// Insert adds or replaces the node id with the given style and child list.
func (e *Engine) Insert(id core.NodeID, s style.Resolved, children []core.NodeID) {
	if int(id) >= len(e.nodes) {
		e.nodes = append(e.nodes, make([]node, int(id)+1-len(e.nodes))...)
	}
	n := &e.nodes[id]
	if !n.present {
		e.count++
	}
	*n = node{
		present:  true,
		box:      s.Box,
		children: append([]core.NodeID(nil), children...),
		rect:     n.rect,
		placed:   n.placed,
	}
}

// Has reports whether id has been inserted.
func (e *Engine) Has(id core.NodeID) bool {
	return int(id) < len(e.nodes) && e.nodes[id].present
}

// Children returns the child list id was inserted with.
func (e *Engine) Children(id core.NodeID) []core.NodeID {
	if !e.Has(id) {
		return nil
	}
	return e.nodes[id].children
}

// UpdateStyle replaces the style of an existing node without touching its
// children.
func (e *Engine) UpdateStyle(id core.NodeID, s style.Resolved) error {
	if !e.Has(id) {
		return fmt.Errorf("update style of %d: %w", id, ErrUnknownNode)
	}
	e.nodes[id].box = s.Box
	return nil
}

// Compute lays out the tree under root inside a width×height area.
func (e *Engine) Compute(root core.NodeID, width, height int) error {
	if !e.Has(root) {
		return fmt.Errorf("compute %d: %w", root, ErrUnknownNode)
	}
	r := core.NewRect(0, 0, width, height)
	box := e.nodes[root].box
	if box.Width > 0 {
		r.W = min(box.Width, width)
	}
	if box.Height > 0 {
		r.H = min(box.Height, height)
	}
	e.moved = e.moved[:0]
	e.gen++
	e.place(root, r)

	// Nodes that were laid out before but are gone from the tree leave
	// their old area behind.
	for i := range e.nodes {
		n := &e.nodes[i]
		if n.placed != e.gen && !n.rect.IsEmpty() {
			e.moved = append(e.moved, n.rect)
			n.rect = core.Rect{}
		}
	}
	return nil
}

// MovedRects returns the previous and new rectangles of every node whose
// geometry changed during the last Compute, plus the last rectangle of
// every node that is no longer laid out. The slice is reused.
func (e *Engine) MovedRects() []core.Rect {
	return e.moved
}

// RectFor returns the rectangle assigned to id by the last Compute.
func (e *Engine) RectFor(id core.NodeID) (core.Rect, error) {
	if !e.Has(id) {
		return core.Rect{}, fmt.Errorf("rect for %d: %w", id, ErrUnknownNode)
	}
	return e.nodes[id].rect, nil
}

// place assigns r to id and distributes its content box among children.
func (e *Engine) place(id core.NodeID, r core.Rect) {
	n := &e.nodes[id]
	if n.rect != r {
		if !n.rect.IsEmpty() {
			e.moved = append(e.moved, n.rect)
		}
		e.moved = append(e.moved, r)
	}
	n.rect = r
	n.placed = e.gen

	kids := make([]core.NodeID, 0, len(n.children))
	for _, c := range n.children {
		if e.Has(c) {
			kids = append(kids, c)
		}
	}
	if len(kids) == 0 {
		return
	}

	inner := n.box.Inner(r)
	row := n.box.Direction == style.Row
	mainSize, crossSize := inner.H, inner.W
	if row {
		mainSize, crossSize = inner.W, inner.H
	}

	gap := max(n.box.Gap, 0)
	free := mainSize - gap*(len(kids)-1)
	grow := 0
	for _, c := range kids {
		if m := mainOf(e.nodes[c].box, row); m > 0 {
			free -= m
		} else {
			grow += growOf(e.nodes[c].box)
		}
	}
	free = max(free, 0)

	// The last auto child absorbs the rounding remainder.
	lastAuto := -1
	for i, c := range kids {
		if mainOf(e.nodes[c].box, row) == 0 {
			lastAuto = i
		}
	}

	pos := 0
	given := 0
	for i, c := range kids {
		box := e.nodes[c].box
		size := mainOf(box, row)
		if size == 0 {
			if i == lastAuto {
				size = free - given
			} else {
				size = free * growOf(box) / grow
			}
			given += size
		}
		size = max(min(size, mainSize-pos), 0)

		cross := crossSize
		if cb := crossOf(box, row); cb > 0 {
			cross = min(cb, crossSize)
		}

		var cr core.Rect
		if row {
			cr = core.NewRect(inner.X+pos, inner.Y, size, cross)
		} else {
			cr = core.NewRect(inner.X, inner.Y+pos, cross, size)
		}
		e.place(c, cr)

		pos = min(pos+size+gap, mainSize)
	}
}

func mainOf(b style.Box, row bool) int {
	if row {
		return b.Width
	}
	return b.Height
}

func crossOf(b style.Box, row bool) int {
	if row {
		return b.Height
	}
	return b.Width
}

func growOf(b style.Box) int {
	if b.Grow <= 0 {
		return 1
	}
	return b.Grow
}
