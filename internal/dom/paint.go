package dom

import (
	"github.com/dshills/framecore/internal/renderer/core"
	"github.com/dshills/framecore/internal/view"
)

// Box drawing characters for element borders.
const (
	borderTopLeft     = '┌'
	borderTopRight    = '┐'
	borderBottomLeft  = '└'
	borderBottomRight = '┘'
	borderHorizontal  = '─'
	borderVertical    = '│'
)

// Render paints the whole tree into buf, clipped to area. Nodes without a
// rectangle from the geometry are skipped with their subtree. If v
// implements view.PaintObserver it is told the painted area.
func (d *DOM) Render(v view.View, buf *core.Buffer, area core.Rect) {
	area = area.Intersection(buf.Bounds())
	if d.root == 0 || d.geometry == nil || area.IsEmpty() {
		return
	}

	root := d.nodes[d.root].resolved.Pen
	if d.animator != nil {
		if bg, ok := d.animator.Color("", PropBackground); ok {
			root.Background = bg
		}
	}
	d.paint(d.root, buf, area, root, true)

	if o, ok := v.(view.PaintObserver); ok {
		o.Painted(area)
	}
}

func (d *DOM) paint(id core.NodeID, buf *core.Buffer, clip core.Rect, inherited core.Style, isRoot bool) {
	n := &d.nodes[id]
	rect, err := d.geometry.RectFor(id)
	if err != nil {
		return
	}

	pen := n.resolved.Pen
	if isRoot {
		pen = inherited
	} else if n.decl.Background.IsNone() {
		// An animated ancestor background shows through.
		pen.Background = inherited.Background
	}
	if d.animator != nil && n.elementID != "" {
		if fg, ok := d.animator.Color(n.elementID, PropForeground); ok {
			pen.Foreground = fg
		}
		if bg, ok := d.animator.Color(n.elementID, PropBackground); ok {
			pen.Background = bg
		}
	}

	visible := rect.Intersection(clip)
	if visible.IsEmpty() {
		return
	}
	if isRoot || !n.decl.Background.IsNone() || pen.Background != inherited.Background {
		buf.Fill(visible, core.NewCell(' ', pen))
	}

	box := n.resolved.Box
	if box.Border {
		drawBorder(buf, rect, visible, pen)
	}
	inner := box.Inner(rect)
	innerClip := inner.Intersection(clip)

	switch n.kind {
	case view.KindText:
		d.paintText(n, buf, inner, innerClip, pen)
	case view.KindCustom:
		if n.paint != nil && !innerClip.IsEmpty() {
			n.paint(buf, inner, pen)
		}
	}

	for _, c := range n.children {
		d.paint(c, buf, innerClip, pen, false)
	}
}

func (d *DOM) paintText(n *node, buf *core.Buffer, inner, clip core.Rect, pen core.Style) {
	var linkID core.LinkID
	if n.link != "" {
		linkID = buf.RegisterLink(n.link)
	}
	for i, line := range textLines(n.text, d.tabWidth) {
		y := inner.Y + i
		if y >= clip.Bottom() {
			break
		}
		written := buf.DrawString(inner.X, y, line, pen, clip)
		if linkID != 0 && written > 0 {
			buf.SetLink(core.NewRect(max(inner.X, clip.X), y, written, 1), linkID)
		}
	}
}

func drawBorder(buf *core.Buffer, r, clip core.Rect, pen core.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	set := func(x, y int, ch rune) {
		if clip.Contains(x, y) {
			buf.SetCell(x, y, core.NewCell(ch, pen))
		}
	}
	right, bottom := r.Right()-1, r.Bottom()-1
	for x := r.X + 1; x < right; x++ {
		set(x, r.Y, borderHorizontal)
		set(x, bottom, borderHorizontal)
	}
	for y := r.Y + 1; y < bottom; y++ {
		set(r.X, y, borderVertical)
		set(right, y, borderVertical)
	}
	set(r.X, r.Y, borderTopLeft)
	set(right, r.Y, borderTopRight)
	set(r.X, bottom, borderBottomLeft)
	set(right, bottom, borderBottomRight)
}
