// Package emit writes buffer contents to a terminal as a minimal stream of
// escape sequences. The Emitter carries the last colour, attribute and
// hyperlink state it sent so redundant codes are suppressed.
package emit

import (
	"bufio"
	"io"

	"github.com/dshills/framecore/internal/renderer/core"
)

// Options configures an Emitter.
type Options struct {
	ColorMode ColorMode

	// Hyperlinks enables OSC 8 output. When false, cell links are ignored.
	Hyperlinks bool
}

// DefaultOptions returns true colour output with hyperlinks enabled.
func DefaultOptions() Options {
	return Options{ColorMode: ColorModeTrueColor, Hyperlinks: true}
}

// pen is a carried colour. A zero pen is "unset": nothing has been sent this
// frame. An unset pen differs from a sent default colour.
type pen struct {
	color core.Color
	sent  bool
}

// Emitter is a stateful escape sequence writer. It is not safe for
// concurrent use.
type Emitter struct {
	out *countingWriter
	w   *bufio.Writer

	opts    Options
	palette *palette

	fg, bg pen
	attrs  core.Attribute
	link   core.LinkID
}

// New creates an emitter writing to w.
func New(w io.Writer, opts Options) *Emitter {
	cw := &countingWriter{w: w}
	return &Emitter{
		out:     cw,
		w:       bufio.NewWriterSize(cw, 64*1024),
		opts:    opts,
		palette: newPalette(),
	}
}

// SetOptions replaces the emitter options; takes effect next frame.
func (e *Emitter) SetOptions(opts Options) {
	e.opts = opts
}

// Options returns the current options.
func (e *Emitter) Options() Options {
	return e.opts
}

// Written returns the total number of bytes written to the underlying writer.
func (e *Emitter) Written() int64 {
	return e.out.n
}

// Changes emits the given cell changes, read against buf for link and
// sequence resolution, and flushes. It returns the number of bytes written.
func (e *Emitter) Changes(buf *core.Buffer, changes []core.Change) (int, error) {
	start := e.out.n
	e.reset()
	for _, ch := range changes {
		e.cell(buf, ch.X, ch.Y, ch.Cell)
	}
	err := e.finish()
	return int(e.out.n - start), err
}

// Full clears the screen and emits every cell of buf in row-major order.
func (e *Emitter) Full(buf *core.Buffer) (int, error) {
	start := e.out.n
	e.reset()
	e.w.Write(eraseScreen)
	cells := buf.Cells()
	width := buf.Width()
	for i, c := range cells {
		e.cell(buf, i%width, i/width, c)
	}
	err := e.finish()
	return int(e.out.n - start), err
}

// reset forgets carried state at the start of a frame.
func (e *Emitter) reset() {
	e.fg = pen{}
	e.bg = pen{}
	e.attrs = core.AttrNone
	e.link = 0
}

func (e *Emitter) cell(buf *core.Buffer, x, y int, c core.Cell) {
	if c.IsContinuation() {
		return
	}
	w := e.w

	writeCursorPos(w, x, y)

	if e.opts.Hyperlinks && c.Link != e.link {
		if e.link != 0 {
			w.Write(linkClose)
		}
		e.link = 0
		if url, id, ok := buf.Link(c.Link); ok {
			writeLinkOpen(w, url, id)
			e.link = c.Link
		}
	}

	e.setAttrs(c.Attrs)
	e.setColor(&e.fg, c.Fg, csiFgRGB, csiFg256, csiDefaultFg)
	e.setColor(&e.bg, c.Bg, csiBgRGB, csiBg256, csiDefaultBg)

	if c.Seq != 0 {
		if s, ok := buf.Sequence(c.Seq); ok {
			w.WriteString(s)
			return
		}
	}
	r := c.Glyph()
	switch {
	case r >= 0x20 && r < 0x7F:
		w.WriteByte(byte(r))
	case core.RuneWidth(r) == 0:
		// Control and lone combining runes would not advance the cursor.
		w.WriteByte(' ')
	default:
		w.WriteRune(r)
	}
}

// setAttrs brings the terminal attribute set to attrs. Turning a bit off
// needs a full reset, which also clears colours; the carried colours are
// then marked as sent-default so setColor re-emits whatever the cell needs.
func (e *Emitter) setAttrs(attrs core.Attribute) {
	if attrs == e.attrs {
		return
	}
	w := e.w
	w.Write(csi)
	first := true
	if !e.attrs.IsEmpty() {
		w.WriteByte('0')
		first = false
		e.fg = pen{sent: true}
		e.bg = pen{sent: true}
	}
	for i, a := range core.AllAttributes {
		if attrs.Has(a) {
			if !first {
				w.WriteByte(';')
			}
			w.WriteByte(sgrCodes[i])
			first = false
		}
	}
	w.WriteByte('m')
	e.attrs = attrs
}

func (e *Emitter) setColor(p *pen, c core.Color, rgb, pal, def []byte) {
	if p.sent && p.color == c {
		return
	}
	w := e.w
	switch {
	case c.IsNone():
		if p.sent && !p.color.IsNone() {
			w.Write(def)
		}
	case e.opts.ColorMode == ColorMode256:
		w.Write(pal)
		writeInt(w, e.palette.index(c))
		w.WriteByte('m')
	default:
		w.Write(rgb)
		writeInt(w, int(c.R))
		w.WriteByte(';')
		writeInt(w, int(c.G))
		w.WriteByte(';')
		writeInt(w, int(c.B))
		w.WriteByte('m')
	}
	*p = pen{color: c, sent: true}
}

// finish closes any open hyperlink, resets a non-default pen and flushes.
func (e *Emitter) finish() error {
	if e.link != 0 {
		e.w.Write(linkClose)
		e.link = 0
	}
	if !e.attrs.IsEmpty() || !e.fg.color.IsNone() || !e.bg.color.IsNone() {
		e.w.Write(csiSGR0)
	}
	e.reset()
	if err := e.w.Flush(); err != nil {
		// bufio keeps the first write error forever; drop the partial frame
		// so the next one can go through.
		e.w.Reset(e.out)
		return err
	}
	return nil
}

// countingWriter counts bytes that reach the underlying writer.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
