package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/framecore/internal/animation"
	"github.com/dshills/framecore/internal/config"
	"github.com/dshills/framecore/internal/dom"
	"github.com/dshills/framecore/internal/renderer/backend"
	"github.com/dshills/framecore/internal/renderer/core"
	"github.com/dshills/framecore/internal/renderer/style"
	"github.com/dshills/framecore/internal/view"
)

// DemoURL is the hyperlink shown by the demo.
const DemoURL = "https://github.com/dshills/framecore"

// Demo element ids.
const (
	DemoTitleID   = "title"
	DemoCounterID = "counter"
)

// Demo is the showcase view: a title with a looping colour transition, a
// counter that flashes when it changes, a hyperlink, wide and combined
// glyphs, a custom-painted meter and an optional background pulse.
type Demo struct {
	timeline *animation.Timeline
	fg, bg   core.Color
	accent   core.Color

	count   int
	pulsing bool
}

// NewDemo creates the demo view. Transitions are started on tl.
func NewDemo(tl *animation.Timeline, theme config.ThemeConfig) *Demo {
	fg, bg, accent := theme.Colors()
	if fg.IsNone() {
		fg = core.RGB(208, 208, 208)
	}
	if bg.IsNone() {
		bg = core.RGB(28, 28, 28)
	}
	if accent.IsNone() {
		accent = core.RGB(95, 175, 255)
	}
	return &Demo{timeline: tl, fg: fg, bg: bg, accent: accent}
}

// Count returns the counter value.
func (d *Demo) Count() int { return d.count }

// Pulsing reports whether the background pulse is running.
func (d *Demo) Pulsing() bool { return d.pulsing }

// Build implements view.View.
func (d *Demo) Build() *view.Element {
	frame := style.Style{Box: style.Box{
		Direction: style.Column,
		Border:    true,
		Padding:   style.Edges{Left: 1, Right: 1},
	}}
	title := style.Style{Foreground: d.accent, Attributes: core.AttrBold}
	dim := style.Style{Attributes: core.AttrDim}

	pulse := "off"
	if d.pulsing {
		pulse = "on"
	}

	return view.Box(frame,
		view.Text("framecore").WithStyle(title).WithID(DemoTitleID).WithKey("title"),
		view.Text(fmt.Sprintf("count %d", d.count)).WithID(DemoCounterID).WithKey("counter"),
		view.Custom(d.count, d.paintMeter).
			WithStyle(style.Style{Box: style.Box{Height: 1}}).
			WithKey("meter"),
		view.Text("docs  "+DemoURL).
			WithStyle(style.Style{Attributes: core.AttrUnderline}).
			WithLink(DemoURL).
			WithKey("link"),
		view.Text("wide  世界 こんにちは 👋🏽 é").WithKey("wide"),
		view.Text("pulse "+pulse).WithKey("pulse"),
		view.Column().WithKey("spacer"),
		view.Text("+/- count   p pulse   r redraw   q quit").WithStyle(dim).WithKey("help"),
	)
}

// paintMeter draws one block per count, wrapping at the area width.
func (d *Demo) paintMeter(buf *core.Buffer, area core.Rect, pen core.Style) {
	if area.W <= 0 {
		return
	}
	n := d.count % (area.W + 1)
	pen.Foreground = d.accent
	buf.DrawString(area.X, area.Y, strings.Repeat("█", n), pen, area)
}

// Mount implements view.Mounter.
func (d *Demo) Mount() {
	d.timeline.Start(animation.Transition{
		ElementID: DemoTitleID,
		Property:  dom.PropForeground,
		From:      d.accent,
		To:        d.fg,
		Duration:  1200 * time.Millisecond,
		Easing:    animation.EaseInOut,
		Repeat:    true,
	})
}

// Unmount implements view.Unmounter.
func (d *Demo) Unmount() {
	d.timeline.Cancel(DemoTitleID, dom.PropForeground)
	d.timeline.Cancel("", dom.PropBackground)
	d.timeline.Cancel(DemoCounterID, dom.PropForeground)
}

// HandleKey implements view.KeyHandler.
func (d *Demo) HandleKey(ev backend.Event) bool {
	switch {
	case ev.Key == backend.KeyUp, ev.Key == backend.KeyRune && ev.Rune == '+':
		d.count++
		d.flash()
		return true

	case ev.Key == backend.KeyDown, ev.Key == backend.KeyRune && ev.Rune == '-':
		if d.count == 0 {
			return false
		}
		d.count--
		d.flash()
		return true

	case ev.Key == backend.KeyRune && ev.Rune == 'p':
		d.pulsing = !d.pulsing
		if d.pulsing {
			d.timeline.Start(animation.Transition{
				Property: dom.PropBackground,
				From:     d.bg,
				To:       d.bg.Blend(d.accent, 0.3),
				Duration: 2 * time.Second,
				Easing:   animation.EaseInOut,
				Repeat:   true,
			})
		} else {
			d.timeline.Cancel("", dom.PropBackground)
		}
		return true
	}
	return false
}

// flash briefly highlights the counter.
func (d *Demo) flash() {
	d.timeline.Start(animation.Transition{
		ElementID: DemoCounterID,
		Property:  dom.PropForeground,
		From:      d.accent,
		To:        d.fg,
		Duration:  400 * time.Millisecond,
		Easing:    animation.EaseOut,
	})
}
