package renderer

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/dshills/framecore/internal/renderer/core"
	"github.com/dshills/framecore/internal/renderer/dirty"
	"github.com/dshills/framecore/internal/renderer/emit"
	"github.com/dshills/framecore/internal/renderer/screen"
	"github.com/dshills/framecore/internal/view"
)

// Strategy is how a frame reached the terminal.
type Strategy int

const (
	// StrategyIdle emitted nothing.
	StrategyIdle Strategy = iota
	// StrategyIncremental diffed the dirty rectangles.
	StrategyIncremental
	// StrategyAnimation diffed only rectangles of running transitions.
	StrategyAnimation
	// StrategyForce cleared the screen and emitted every cell.
	StrategyForce
)

func (s Strategy) String() string {
	switch s {
	case StrategyIdle:
		return "idle"
	case StrategyIncremental:
		return "incremental"
	case StrategyAnimation:
		return "animation"
	case StrategyForce:
		return "force"
	default:
		return "unknown"
	}
}

// FrameStats describes one rendered frame.
type FrameStats struct {
	Frame    uint64
	Strategy Strategy
	Rects    int // merged dirty rectangles
	Changes  int // cells handed to the emitter
	Bytes    int // bytes written to the terminal
}

// Renderer is the frame controller. It owns the double buffer, the dirty
// tracker and the emitter, and drives the DOM and Layout collaborators.
type Renderer struct {
	dom     DOM
	layout  Layout
	anim    Animation
	pair    *screen.Pair
	tracker *dirty.Tracker
	emitter *emit.Emitter
	logger  *log.Logger

	needsDomRebuild    bool
	needsLayoutRebuild bool
	needsForceRedraw   bool

	// animRects are the areas painted with transition values last frame.
	animRects []core.Rect

	frame uint64
}

// New creates a renderer writing to out with buffers of the given size.
func New(out io.Writer, width, height int, d DOM, l Layout, opts Options) *Renderer {
	r := &Renderer{
		dom:                d,
		layout:             l,
		pair:               screen.NewPair(width, height),
		tracker:            dirty.NewTracker(width, height),
		emitter:            emit.New(out, opts.Emit),
		logger:             opts.Logger,
		needsDomRebuild:    true,
		needsLayoutRebuild: true,
		needsForceRedraw:   true,
	}
	if r.logger == nil {
		r.logger = discardLogger()
	}
	if opts.MaxDirtyRects > 0 {
		r.tracker.SetMaxRects(opts.MaxDirtyRects)
	}
	if opts.CoalesceThreshold > 0 {
		r.tracker.SetCoalesceThreshold(opts.CoalesceThreshold)
	}
	return r
}

// SetAnimation sets the transition source. Nil disables it.
func (r *Renderer) SetAnimation(a Animation) {
	r.anim = a
}

// SetEmitOptions changes colour mode or hyperlink output and forces a full
// redraw.
func (r *Renderer) SetEmitOptions(opts emit.Options) {
	r.emitter.SetOptions(opts)
	r.needsForceRedraw = true
}

// Invalidate makes the next frame rebuild the DOM from the view.
func (r *Renderer) Invalidate() {
	r.needsDomRebuild = true
}

// RequestRedraw makes the next frame a full redraw.
func (r *Renderer) RequestRedraw() {
	r.needsForceRedraw = true
}

// Resize reallocates both buffers. The next frame relayouts and redraws
// everything.
func (r *Renderer) Resize(width, height int) {
	r.pair.Resize(width, height)
	r.tracker.SetScreenSize(width, height)
	r.needsForceRedraw = true
	r.needsLayoutRebuild = true
	r.logger.Info("resize", "width", width, "height", height)
}

// Size returns the buffer dimensions.
func (r *Renderer) Size() (width, height int) {
	return r.pair.Size()
}

// Frame returns the number of frames started.
func (r *Renderer) Frame() uint64 {
	return r.frame
}

// Current returns the buffer that mirrors the terminal.
func (r *Renderer) Current() *core.Buffer {
	return r.pair.Current()
}

// ActiveBuffer returns the index of the current buffer.
func (r *Renderer) ActiveBuffer() int {
	return r.pair.Active()
}

// BytesWritten returns the total bytes emitted since creation.
func (r *Renderer) BytesWritten() int64 {
	return r.emitter.Written()
}

// RenderFrame runs the frame pipeline for v. When force is true the frame is
// a full redraw regardless of dirty state.
//
// ErrRootMissing and write errors are returned wrapped in a *FrameError. A
// failed emission leaves the buffers unflipped and forces a full redraw on
// the next frame, since the terminal contents are then unknown.
func (r *Renderer) RenderFrame(v view.View, force bool) (FrameStats, error) {
	r.frame++
	stats := FrameStats{Frame: r.frame}

	if r.needsDomRebuild {
		if err := r.dom.Build(v); err != nil {
			return stats, &FrameError{Op: "build", Frame: r.frame, Err: err}
		}
		r.needsDomRebuild = false
		r.needsLayoutRebuild = true
	}
	r.dom.ComputeStyles()

	root, ok := r.dom.RootID()
	if !ok {
		return stats, &FrameError{Op: "root", Frame: r.frame, Err: ErrRootMissing}
	}

	rebuilt := r.needsLayoutRebuild
	if rebuilt {
		r.layout.Clear()
		r.insertTree(root)
		r.needsLayoutRebuild = false
	} else {
		r.syncLayout(root)
	}

	width, height := r.pair.Size()
	if err := r.layout.Compute(root, width, height); err != nil {
		return stats, &FrameError{Op: "layout", Frame: r.frame, Err: err}
	}

	r.collectDirty(rebuilt)
	nodesDirty := r.tracker.IsDirty()
	r.markAnimations()
	rects := r.tracker.Rects()

	switch {
	case force || r.needsForceRedraw:
		stats.Strategy = StrategyForce
	case nodesDirty:
		stats.Strategy = StrategyIncremental
	case len(rects) > 0:
		stats.Strategy = StrategyAnimation
	}

	if stats.Strategy == StrategyIdle {
		// Nothing to emit. The target still becomes current so the index
		// flips every frame.
		if err := r.pair.Target().CopyFrom(r.pair.Current()); err != nil {
			return stats, &FrameError{Op: "copy", Frame: r.frame, Err: err}
		}
		r.pair.Flip()
		r.dom.ClearDirty()
		r.logFrame(stats)
		return stats, nil
	}

	target := r.pair.Target()
	target.Clear()
	r.dom.Render(v, target, target.Bounds())

	var err error
	if stats.Strategy == StrategyForce {
		stats.Rects = 1
		stats.Changes = width * height
		stats.Bytes, err = r.emitter.Full(target)
	} else {
		var changes []core.Change
		changes, err = screen.Diff(r.pair.Current(), target, rects)
		if err != nil {
			return stats, &FrameError{Op: "diff", Frame: r.frame, Err: err}
		}
		stats.Rects = len(rects)
		stats.Changes = len(changes)
		stats.Bytes, err = r.emitter.Changes(target, changes)
	}
	if err != nil {
		r.needsForceRedraw = true
		return stats, &FrameError{Op: "emit", Frame: r.frame, Err: err}
	}
	if stats.Strategy == StrategyForce {
		r.needsForceRedraw = false
	}

	r.pair.Flip()
	r.dom.ClearDirty()
	r.logFrame(stats)
	return stats, nil
}

// insertTree mirrors the DOM subtree under id into the layout, depth first.
func (r *Renderer) insertTree(id core.NodeID) {
	s, _ := r.dom.StyleFor(id)
	children := r.dom.Children(id)
	r.layout.Insert(id, s, children)
	for _, c := range children {
		r.insertTree(c)
	}
}

// syncLayout pushes styles of dirty nodes into the existing layout tree.
// A node without a layout entry, or whose children no longer match, flags a
// rebuild for the next frame and stops the walk; nodes visited after it keep
// their old layout for this frame.
func (r *Renderer) syncLayout(id core.NodeID) bool {
	if !r.layout.Has(id) {
		r.needsLayoutRebuild = true
		return false
	}
	children := r.dom.Children(id)
	if r.dom.IsDirty(id) {
		if !slices.Equal(r.layout.Children(id), children) {
			r.needsLayoutRebuild = true
			return false
		}
		if s, ok := r.dom.StyleFor(id); ok {
			if err := r.layout.UpdateStyle(id, s); err != nil {
				r.needsLayoutRebuild = true
				return false
			}
		}
	}
	for _, c := range children {
		if !r.syncLayout(c) {
			return false
		}
	}
	return true
}

// collectDirty fills the tracker with the rectangles of dirty nodes and of
// nodes whose geometry moved.
func (r *Renderer) collectDirty(rebuilt bool) {
	r.tracker.Clear()
	for _, id := range r.dom.DirtyNodeIDs() {
		rect, err := r.layout.RectFor(id)
		if err != nil {
			continue
		}
		r.tracker.Mark(rect)
	}
	if mr, ok := r.layout.(MoveReporter); ok {
		r.tracker.MarkAll(mr.MovedRects())
	} else if rebuilt {
		r.tracker.MarkFull()
	}
}

// markAnimations adds the rectangles of running transitions to the tracker
// and remembers them, so the frame after a transition ends repaints what it
// touched. An untargeted transition covers the whole screen.
func (r *Renderer) markAnimations() {
	// Areas animated last frame may have settled.
	r.tracker.MarkAll(r.animRects)
	r.animRects = r.animRects[:0]
	if r.anim == nil || !r.anim.HasActive() {
		return
	}
	for _, eid := range r.anim.ActiveElementIDs() {
		id, ok := r.dom.NodeForElement(eid)
		if !ok {
			continue
		}
		if rect, err := r.layout.RectFor(id); err == nil {
			r.animRects = append(r.animRects, rect)
		}
	}
	if len(r.anim.ActiveUntargetedProperties()) > 0 {
		r.animRects = append(r.animRects[:0], r.tracker.Bounds())
	}
	r.tracker.MarkAll(r.animRects)
}

func (r *Renderer) logFrame(s FrameStats) {
	r.logger.Debug("frame",
		"n", s.Frame,
		"strategy", s.Strategy,
		"rects", s.Rects,
		"changes", s.Changes,
		"bytes", s.Bytes,
	)
}
