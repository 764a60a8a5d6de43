// Package renderer drives one frame at a time from a view to the terminal.
//
// Each call to RenderFrame runs the frame pipeline synchronously:
//
//	view ─► DOM (build, styles) ─► dirty node ids
//	     ─► Layout (rebuild or incremental update, compute) ─► rectangles
//	     ─► dirty.Tracker (merge) ─► paint into the inactive buffer
//	     ─► screen.Diff (old, new, rects) ─► emit.Emitter ─► flip
//
// Dirty tracking narrows only what is emitted. The whole view is painted into
// the target buffer every frame, and after every successful frame the current
// buffer equals the terminal contents.
//
// The DOM, Layout and Animation collaborators are interfaces; the dom and
// layout packages provide reference implementations. The Renderer is not safe
// for concurrent use: the host must serialise calls.
//
// Usage:
//
//	r := renderer.New(out, 80, 24, dom.New(base), layout.New(), renderer.DefaultOptions())
//	stats, err := r.RenderFrame(myView, false)
package renderer
