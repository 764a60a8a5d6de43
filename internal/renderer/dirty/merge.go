// Package dirty turns per-node damage into the set of screen rectangles that
// must be re-examined this frame. Overlapping or edge-sharing rectangles are
// coalesced so the differ visits each cell at most once.
package dirty

import "github.com/dshills/framecore/internal/renderer/core"

// Merge coalesces rects until no two of them overlap or share a full edge.
// Empty rectangles are dropped. The union of the result covers the union of
// the input; merged pairs are replaced by their bounding box, so the result
// may cover more than the input but never less.
//
// The input slice is not modified.
func Merge(rects []core.Rect) []core.Rect {
	out := make([]core.Rect, 0, len(rects))
	for _, r := range rects {
		if !r.IsEmpty() {
			out = append(out, r)
		}
	}
	return coalesce(out)
}

// coalesce merges in place and returns the shortened slice.
// Simple O(n²) fixpoint; per-frame counts are bounded by changed widgets.
func coalesce(rects []core.Rect) []core.Rect {
	if len(rects) <= 1 {
		return rects
	}

	changed := true
	for changed {
		changed = false
		for i := 0; i < len(rects); i++ {
			for j := i + 1; j < len(rects); j++ {
				if !mergeable(rects[i], rects[j]) {
					continue
				}
				rects[i] = rects[i].Union(rects[j])
				rects = append(rects[:j], rects[j+1:]...)
				changed = true
				break
			}
			if changed {
				break
			}
		}
	}
	return rects
}

func mergeable(a, b core.Rect) bool {
	return a.Intersects(b) || a.Adjacent(b)
}

// Covers reports whether every cell of want lies inside at least one of rects.
func Covers(rects []core.Rect, want core.Rect) bool {
	for y := want.Y; y < want.Bottom(); y++ {
		for x := want.X; x < want.Right(); x++ {
			if !containsPoint(rects, x, y) {
				return false
			}
		}
	}
	return true
}

func containsPoint(rects []core.Rect, x, y int) bool {
	for _, r := range rects {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}
