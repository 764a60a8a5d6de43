package view

import (
	"github.com/dshills/framecore/internal/renderer/core"
	"github.com/dshills/framecore/internal/renderer/style"
)

// Kind is the type of an element.
type Kind uint8

const (
	// KindBox is a container that lays out its children.
	KindBox Kind = iota
	// KindText draws a block of text, one line per row.
	KindText
	// KindCustom draws through a PaintFunc.
	KindCustom
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindText:
		return "text"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// PaintFunc draws a custom element into area using the resolved pen.
type PaintFunc func(buf *core.Buffer, area core.Rect, pen core.Style)

// Element is one node of a declarative view tree.
type Element struct {
	Kind Kind

	// Key identifies the element among its siblings across rebuilds.
	// Unkeyed siblings are matched by position.
	Key string

	// ID names the element for animation targeting. IDs should be unique
	// within a tree.
	ID string

	Style style.Style
	Text  string
	Link  string

	// Paint draws KindCustom elements. Functions cannot be compared, so a
	// custom element must bump Revision whenever its drawing changes.
	Paint    PaintFunc
	Revision int

	Children []*Element
}

// Box creates a container element.
func Box(s style.Style, children ...*Element) *Element {
	return &Element{Kind: KindBox, Style: s, Children: children}
}

// Column creates a container that stacks children vertically.
func Column(children ...*Element) *Element {
	return Box(style.Style{Box: style.Box{Direction: style.Column}}, children...)
}

// Row creates a container that places children horizontally.
func Row(children ...*Element) *Element {
	return Box(style.Style{Box: style.Box{Direction: style.Row}}, children...)
}

// Text creates a text element.
func Text(text string) *Element {
	return &Element{Kind: KindText, Text: text}
}

// Custom creates an element drawn by paint.
func Custom(revision int, paint PaintFunc) *Element {
	return &Element{Kind: KindCustom, Paint: paint, Revision: revision}
}

// WithKey sets the element key and returns the element.
func (e *Element) WithKey(key string) *Element {
	e.Key = key
	return e
}

// WithID sets the element id and returns the element.
func (e *Element) WithID(id string) *Element {
	e.ID = id
	return e
}

// WithStyle sets the element style and returns the element.
func (e *Element) WithStyle(s style.Style) *Element {
	e.Style = s
	return e
}

// WithLink attaches a hyperlink and returns the element.
func (e *Element) WithLink(url string) *Element {
	e.Link = url
	return e
}

// Walk calls fn for e and every descendant in depth-first order.
func (e *Element) Walk(fn func(*Element)) {
	if e == nil {
		return
	}
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}
