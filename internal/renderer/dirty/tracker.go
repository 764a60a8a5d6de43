package dirty

import "github.com/dshills/framecore/internal/renderer/core"

// Tracker accumulates damaged rectangles for one frame and coalesces them.
// It is not safe for concurrent use; the frame pipeline owns it.
type Tracker struct {
	// rects contains the current merged dirty rectangles.
	rects []core.Rect

	// full indicates the entire screen needs re-examination.
	full bool

	bounds core.Rect

	// maxRects is the maximum number of rectangles before forcing full screen.
	maxRects int

	// coalesceThreshold is the fraction of the screen that triggers full screen.
	coalesceThreshold float64
}

// NewTracker creates a tracker for a screen of the given size.
// Negative dimensions are treated as zero.
func NewTracker(screenWidth, screenHeight int) *Tracker {
	return &Tracker{
		rects:             make([]core.Rect, 0, 16),
		bounds:            core.NewRect(0, 0, max(screenWidth, 0), max(screenHeight, 0)),
		maxRects:          32,
		coalesceThreshold: 1,
	}
}

// SetScreenSize updates the screen dimensions and marks the whole screen dirty.
func (t *Tracker) SetScreenSize(width, height int) {
	t.bounds = core.NewRect(0, 0, max(width, 0), max(height, 0))
	t.MarkFull()
}

// Bounds returns the screen rectangle.
func (t *Tracker) Bounds() core.Rect {
	return t.bounds
}

// MarkFull marks the entire screen as dirty.
func (t *Tracker) MarkFull() {
	t.full = true
	t.rects = t.rects[:0]
}

// Mark adds a damaged rectangle, clipped to the screen.
func (t *Tracker) Mark(r core.Rect) {
	if t.full {
		return
	}
	r = r.Intersection(t.bounds)
	if r.IsEmpty() {
		return
	}

	t.rects = coalesce(append(t.rects, r))

	if len(t.rects) > t.maxRects || t.dirtyAreaRatio() > t.coalesceThreshold {
		t.MarkFull()
	}
}

// MarkAll adds every rectangle in rs.
func (t *Tracker) MarkAll(rs []core.Rect) {
	for _, r := range rs {
		t.Mark(r)
	}
}

// dirtyAreaRatio returns the ratio of dirty area to total screen area.
func (t *Tracker) dirtyAreaRatio() float64 {
	total := t.bounds.Area()
	if total == 0 {
		return 0
	}
	dirty := 0
	for _, r := range t.rects {
		dirty += r.Area()
	}
	return float64(dirty) / float64(total)
}

// IsDirty returns true if any rectangle is marked.
func (t *Tracker) IsDirty() bool {
	return t.full || len(t.rects) > 0
}

// NeedsFullRedraw returns true if the whole screen is marked.
func (t *Tracker) NeedsFullRedraw() bool {
	return t.full
}

// Rects returns a copy of the merged dirty rectangles.
// When the whole screen is marked a single screen-sized rectangle is returned.
func (t *Tracker) Rects() []core.Rect {
	if t.full {
		if t.bounds.IsEmpty() {
			return nil
		}
		return []core.Rect{t.bounds}
	}
	if len(t.rects) == 0 {
		return nil
	}
	out := make([]core.Rect, len(t.rects))
	copy(out, t.rects)
	return out
}

// Clear drops all dirty state.
func (t *Tracker) Clear() {
	t.rects = t.rects[:0]
	t.full = false
}

// SetMaxRects sets the rectangle count above which the whole screen is marked.
// Values less than 1 are clamped to 1.
func (t *Tracker) SetMaxRects(n int) {
	t.maxRects = max(n, 1)
}

// SetCoalesceThreshold sets the dirty area fraction above which the whole
// screen is marked. The value is clamped to [0, 1]; 1 disables the check.
func (t *Tracker) SetCoalesceThreshold(threshold float64) {
	t.coalesceThreshold = min(max(threshold, 0), 1)
}

// Stats returns statistics about the tracker state.
func (t *Tracker) Stats() TrackerStats {
	return TrackerStats{
		RectCount:     len(t.rects),
		FullRedraw:    t.full,
		DirtyRatio:    t.dirtyAreaRatio(),
		ScreenWidth:   t.bounds.W,
		ScreenHeight:  t.bounds.H,
		MaxRects:      t.maxRects,
		CoalThreshold: t.coalesceThreshold,
	}
}

// TrackerStats contains statistics about the tracker state.
type TrackerStats struct {
	RectCount     int
	FullRedraw    bool
	DirtyRatio    float64
	ScreenWidth   int
	ScreenHeight  int
	MaxRects      int
	CoalThreshold float64
}
