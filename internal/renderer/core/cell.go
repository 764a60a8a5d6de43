package core

import "github.com/mattn/go-runewidth"

// Continuation marks a cell with no independent glyph: the tail of a wide
// character, or a slot consumed by an out-of-band sequence.
const Continuation rune = -1

// LinkID references a hyperlink URL in the owning Buffer's registry.
// Zero means no hyperlink.
type LinkID uint32

// SeqID references a pre-built string in the owning Buffer's sequence
// registry, used for glyphs that are not a single rune. Zero means none.
type SeqID uint32

// Cell represents a single terminal cell.
// Cells hold no heap references, so buffers copy them by value.
type Cell struct {
	// Rune is the character to display, or Continuation.
	// A zero rune is drawn as a space.
	Rune rune

	Fg    Color
	Bg    Color
	Attrs Attribute

	Link LinkID
	Seq  SeqID
}

// BlankCell returns an empty cell with default style.
func BlankCell() Cell {
	return Cell{Rune: ' '}
}

// NewCell creates a cell with the given rune and style.
func NewCell(r rune, style Style) Cell {
	return Cell{
		Rune:  r,
		Fg:    style.Foreground,
		Bg:    style.Background,
		Attrs: style.Attributes,
	}
}

// ContinuationCell returns a continuation cell carrying the given style.
func ContinuationCell(style Style) Cell {
	return NewCell(Continuation, style)
}

// Style returns the pen of the cell.
func (c Cell) Style() Style {
	return Style{Foreground: c.Fg, Background: c.Bg, Attributes: c.Attrs}
}

// WithStyle returns a new cell with the given style.
func (c Cell) WithStyle(style Style) Cell {
	c.Fg = style.Foreground
	c.Bg = style.Background
	c.Attrs = style.Attributes
	return c
}

// IsContinuation returns true if this is a continuation cell.
func (c Cell) IsContinuation() bool {
	return c.Rune == Continuation
}

// IsBlank returns true if the cell draws as an unstyled space.
func (c Cell) IsBlank() bool {
	return (c.Rune == ' ' || c.Rune == 0) && c.Seq == 0 && c.Link == 0 && c.Style().IsDefault()
}

// Glyph returns the rune to write for the cell.
func (c Cell) Glyph() rune {
	if c.Rune == 0 {
		return ' '
	}
	return c.Rune
}

// RuneWidth returns the display width of a rune: 0 for control and
// combining characters, 2 for East Asian wide characters, 1 otherwise.
func RuneWidth(r rune) int {
	if r < 32 || r == 0x7F {
		return 0
	}
	return runewidth.RuneWidth(r)
}
