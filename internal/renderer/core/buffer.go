package core

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// ErrSizeMismatch is returned when two buffers of different sizes are combined.
var ErrSizeMismatch = errors.New("buffer size mismatch")

// link is a registered hyperlink target.
type link struct {
	url string
	id  string
}

// Buffer is a fixed width×height grid of cells in row-major order, plus
// append-only registries for hyperlink URLs and glyph sequences.
//
// Invariant: len(cells) == width*height.
type Buffer struct {
	width, height int
	cells         []Cell

	links     []link
	linkIndex map[string]LinkID

	seqs     []string
	seqIndex map[string]SeqID
}

// NewBuffer creates a buffer filled with blank cells.
// Negative dimensions are treated as zero.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize replaces the grid with a blank one of the given size and clears
// both registries. Content is not preserved.
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b.width = width
	b.height = height
	b.cells = make([]Cell, width*height)
	b.Clear()
}

// Width returns the number of columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.height }

// Size returns the buffer dimensions.
func (b *Buffer) Size() (width, height int) {
	return b.width, b.height
}

// Bounds returns the rectangle covering the whole buffer.
func (b *Buffer) Bounds() Rect {
	return Rect{W: b.width, H: b.height}
}

// Cells returns the backing row-major cell slice. Callers must not resize it.
func (b *Buffer) Cells() []Cell {
	return b.cells
}

// InBounds reports whether (x, y) lies inside the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Cell returns the cell at (x, y), or a blank cell when out of bounds.
func (b *Buffer) Cell(x, y int) Cell {
	if !b.InBounds(x, y) {
		return BlankCell()
	}
	return b.cells[y*b.width+x]
}

// SetCell sets a single cell. Positions outside the buffer are ignored.
func (b *Buffer) SetCell(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = c
}

// Clear fills the grid with blank cells and empties both registries.
func (b *Buffer) Clear() {
	blank := BlankCell()
	for i := range b.cells {
		b.cells[i] = blank
	}
	b.links = b.links[:0]
	b.seqs = b.seqs[:0]
	b.linkIndex = make(map[string]LinkID)
	b.seqIndex = make(map[string]SeqID)
}

// Fill sets every cell of rect (clipped to the buffer) to c.
func (b *Buffer) Fill(rect Rect, c Cell) {
	rect = rect.Intersection(b.Bounds())
	for y := rect.Y; y < rect.Bottom(); y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x := rect.X; x < rect.Right(); x++ {
			row[x] = c
		}
	}
}

// CopyFrom replaces the contents of b with those of src, including the
// registries. Both buffers must have the same size.
func (b *Buffer) CopyFrom(src *Buffer) error {
	if b.width != src.width || b.height != src.height {
		return ErrSizeMismatch
	}
	copy(b.cells, src.cells)
	b.links = append(b.links[:0], src.links...)
	b.seqs = append(b.seqs[:0], src.seqs...)
	b.linkIndex = make(map[string]LinkID, len(src.linkIndex))
	for k, v := range src.linkIndex {
		b.linkIndex[k] = v
	}
	b.seqIndex = make(map[string]SeqID, len(src.seqIndex))
	for k, v := range src.seqIndex {
		b.seqIndex[k] = v
	}
	return nil
}

// RegisterLink registers a hyperlink URL and returns its id.
// Registering the same URL twice returns the same id.
func (b *Buffer) RegisterLink(url string) LinkID {
	if url == "" {
		return 0
	}
	if id, ok := b.linkIndex[url]; ok {
		return id
	}
	b.links = append(b.links, link{
		url: url,
		id:  uuid.NewSHA1(uuid.NameSpaceURL, []byte(url)).String(),
	})
	id := LinkID(len(b.links))
	b.linkIndex[url] = id
	return id
}

// Link resolves a hyperlink id to its URL and a stable link identifier
// suitable for the OSC 8 id parameter.
func (b *Buffer) Link(id LinkID) (url, linkID string, ok bool) {
	if id == 0 || int(id) > len(b.links) {
		return "", "", false
	}
	l := b.links[id-1]
	return l.url, l.id, true
}

// RegisterSequence registers a pre-built output string and returns its id.
func (b *Buffer) RegisterSequence(s string) SeqID {
	if id, ok := b.seqIndex[s]; ok {
		return id
	}
	b.seqs = append(b.seqs, s)
	id := SeqID(len(b.seqs))
	b.seqIndex[s] = id
	return id
}

// Sequence resolves a sequence id.
func (b *Buffer) Sequence(id SeqID) (string, bool) {
	if id == 0 || int(id) > len(b.seqs) {
		return "", false
	}
	return b.seqs[id-1], true
}

// SetLink attaches a hyperlink to every non-empty cell in rect.
func (b *Buffer) SetLink(rect Rect, id LinkID) {
	rect = rect.Intersection(b.Bounds())
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			b.cells[y*b.width+x].Link = id
		}
	}
}

// SetString writes s at (x, y) with the given style, clipped to the buffer.
// Returns the number of columns written.
func (b *Buffer) SetString(x, y int, s string, style Style) int {
	return b.DrawString(x, y, s, style, b.Bounds())
}

// clusterWidth returns the columns a grapheme cluster occupies: RuneWidth
// for a single rune, uniseg's estimate otherwise, capped at 2.
func clusterWidth(g *uniseg.Graphemes) int {
	runes := g.Runes()
	w := g.Width()
	if len(runes) == 1 {
		w = RuneWidth(runes[0])
	}
	return min(w, 2)
}

// StringWidth returns the number of columns DrawString uses for s when
// nothing is clipped.
func StringWidth(s string) int {
	n := 0
	g := uniseg.NewGraphemes(norm.NFC.String(s))
	for g.Next() {
		n += max(clusterWidth(g), 0)
	}
	return n
}

// DrawString writes s at (x, y) with the given style, clipped to clip and
// to the buffer. The text is NFC-normalised and segmented into grapheme
// clusters; wide clusters are followed by a continuation cell, and clusters
// of more than one rune are stored in the sequence registry. A wide cluster
// that does not fit before the clip edge is replaced by a space.
// Returns the number of columns written.
func (b *Buffer) DrawString(x, y int, s string, style Style, clip Rect) int {
	clip = clip.Intersection(b.Bounds())
	if y < clip.Y || y >= clip.Bottom() {
		return 0
	}

	col := x
	g := uniseg.NewGraphemes(norm.NFC.String(s))
	for g.Next() && col < clip.Right() {
		w := clusterWidth(g)
		if w <= 0 {
			continue
		}
		if col < clip.X {
			col += w
			continue
		}

		if w == 2 && col+1 >= clip.Right() {
			b.cells[y*b.width+col] = NewCell(' ', style)
			col++
			break
		}

		runes := g.Runes()
		c := NewCell(runes[0], style)
		if len(runes) > 1 {
			c.Seq = b.RegisterSequence(g.Str())
		}
		b.cells[y*b.width+col] = c
		col++
		if w == 2 {
			b.cells[y*b.width+col] = ContinuationCell(style)
			col++
		}
	}

	written := col - max(x, clip.X)
	if written < 0 {
		return 0
	}
	return written
}

// Text returns the printable content of (x, y): the registered sequence,
// the glyph, or "" for continuation cells.
func (b *Buffer) Text(x, y int) string {
	c := b.Cell(x, y)
	if c.IsContinuation() {
		return ""
	}
	if c.Seq != 0 {
		if s, ok := b.Sequence(c.Seq); ok {
			return s
		}
	}
	return string(c.Glyph())
}

// Equal reports whether two buffers display the same content. Registry ids
// are compared by what they resolve to, not by value.
func (b *Buffer) Equal(other *Buffer) bool {
	if b.width != other.width || b.height != other.height {
		return false
	}
	for i, c := range b.cells {
		o := other.cells[i]
		if c.Rune != o.Rune || c.Style() != o.Style() {
			return false
		}
		x, y := i%b.width, i/b.width
		if b.Text(x, y) != other.Text(x, y) {
			return false
		}
		u1, _, _ := b.Link(c.Link)
		u2, _, _ := other.Link(o.Link)
		if u1 != u2 {
			return false
		}
	}
	return true
}

// String renders the buffer as plain text, one line per row.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			sb.WriteString(b.Text(x, y))
		}
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
