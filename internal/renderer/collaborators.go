package renderer

import (
	"github.com/dshills/framecore/internal/renderer/core"
	"github.com/dshills/framecore/internal/renderer/style"
	"github.com/dshills/framecore/internal/view"
)

// DOM is the retained element tree the renderer drives.
type DOM interface {
	// Build reconciles the tree from v, reusing nodes by identity or position.
	Build(v view.View) error

	// ComputeStyles recomputes resolved styles. Implementations dirty-check
	// internally.
	ComputeStyles()

	// RootID returns the root node, or false if the tree is empty.
	RootID() (core.NodeID, bool)

	// Children returns the child ids of a node.
	Children(id core.NodeID) []core.NodeID

	// IsDirty reports whether a node changed since the last ClearDirty.
	IsDirty(id core.NodeID) bool

	// DirtyNodeIDs returns every node changed since the last ClearDirty.
	DirtyNodeIDs() []core.NodeID

	// ClearDirty resets all dirty flags.
	ClearDirty()

	// StyleFor returns the resolved style of a node.
	StyleFor(id core.NodeID) (style.Resolved, bool)

	// NodeForElement maps an element id to its node.
	NodeForElement(elementID string) (core.NodeID, bool)

	// Render paints the whole tree into buf, clipped to area.
	Render(v view.View, buf *core.Buffer, area core.Rect)
}

// Layout is a box layout tree mirroring the DOM.
type Layout interface {
	Clear()
	Insert(id core.NodeID, s style.Resolved, children []core.NodeID)
	Has(id core.NodeID) bool

	// Children returns the child list a node was inserted with.
	Children(id core.NodeID) []core.NodeID

	// UpdateStyle replaces a node's style without restructuring.
	UpdateStyle(id core.NodeID, s style.Resolved) error

	Compute(root core.NodeID, width, height int) error

	// RectFor fails for unknown ids.
	RectFor(id core.NodeID) (core.Rect, error)
}

// MoveReporter is implemented by layouts that can report the old and new
// rectangles of nodes whose geometry changed in the last Compute. The
// renderer adds them to the dirty set so shifted siblings are re-emitted.
type MoveReporter interface {
	MovedRects() []core.Rect
}

// Animation reports running transitions.
type Animation interface {
	HasActive() bool

	// ActiveElementIDs returns the element ids of targeted transitions.
	ActiveElementIDs() []string

	// ActiveUntargetedProperties returns the properties of transitions that
	// affect the whole screen.
	ActiveUntargetedProperties() []string
}
