package screen

import "github.com/dshills/framecore/internal/renderer/core"

// Diff compares prev and next and returns one change per differing cell.
//
// When rects is non-empty only cells inside them (clipped to the buffer) are
// compared, each at most once even if rects overlap. When rects is empty
// every cell is compared; callers that mean "nothing changed" must not call
// Diff at all.
//
// Continuation cells are compared like any other cell.
func Diff(prev, next *core.Buffer, rects []core.Rect) ([]core.Change, error) {
	if prev.Width() != next.Width() || prev.Height() != next.Height() {
		return nil, core.ErrSizeMismatch
	}

	if len(rects) == 0 {
		return diffRect(nil, prev, next, next.Bounds(), nil), nil
	}

	var seen []bool
	if len(rects) > 1 {
		seen = make([]bool, next.Width()*next.Height())
	}

	var changes []core.Change
	for _, r := range rects {
		changes = diffRect(changes, prev, next, r.Intersection(next.Bounds()), seen)
	}
	return changes, nil
}

func diffRect(changes []core.Change, prev, next *core.Buffer, r core.Rect, seen []bool) []core.Change {
	w := next.Width()
	oc, nc := prev.Cells(), next.Cells()
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			i := y*w + x
			if seen != nil {
				if seen[i] {
					continue
				}
				seen[i] = true
			}
			if !cellsEqual(prev, next, oc[i], nc[i], x, y) {
				changes = append(changes, core.Change{X: x, Y: y, Cell: nc[i]})
			}
		}
	}
	return changes
}

// cellsEqual compares two cells from different buffers. Registry ids are
// buffer-local, so non-zero link and sequence ids are compared by what they
// resolve to.
func cellsEqual(prev, next *core.Buffer, a, b core.Cell, x, y int) bool {
	if a.Rune != b.Rune || a.Style() != b.Style() {
		return false
	}
	if a.Link == 0 && b.Link == 0 && a.Seq == 0 && b.Seq == 0 {
		return true
	}
	if a.Link != 0 || b.Link != 0 {
		u1, _, _ := prev.Link(a.Link)
		u2, _, _ := next.Link(b.Link)
		if u1 != u2 {
			return false
		}
	}
	if a.Seq != 0 || b.Seq != 0 {
		return prev.Text(x, y) == next.Text(x, y)
	}
	return true
}
