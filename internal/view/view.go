// Package view defines the declarative surface applications implement: a
// View builds an Element tree every time the renderer asks for one, and may
// opt into lifecycle hooks by implementing the optional interfaces below.
package view

import (
	"github.com/dshills/framecore/internal/renderer/backend"
	"github.com/dshills/framecore/internal/renderer/core"
)

// View is anything that can describe the UI as an element tree.
type View interface {
	// Build returns the root element. A nil root means there is nothing to
	// draw, which the renderer reports as an error.
	Build() *Element
}

// Mounter is implemented by views that want to know when their tree is
// first built.
type Mounter interface {
	Mount()
}

// Unmounter is implemented by views that want to know when their tree is
// torn down.
type Unmounter interface {
	Unmount()
}

// KeyHandler is implemented by views that consume key events. HandleKey
// returns true when the view changed and must be rebuilt.
type KeyHandler interface {
	HandleKey(ev backend.Event) bool
}

// PaintObserver is implemented by views that want to know the area their
// tree was last painted into.
type PaintObserver interface {
	Painted(area core.Rect)
}

// Func adapts a plain function to the View interface.
type Func func() *Element

// Build calls f.
func (f Func) Build() *Element {
	return f()
}
