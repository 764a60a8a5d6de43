package core

// Attribute represents text attributes (bold, italic, etc.).
// Attributes combine as a bitmask and compare in O(1).
type Attribute uint8

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << iota
	AttrDim                     // Faint/dim text
	AttrItalic                  // Italic text
	AttrUnderline               // Underlined text
	AttrBlink                   // Blinking text (rarely supported)
	AttrReverse                 // Reverse video (swap fg/bg)
	AttrStrikethrough           // Crossed-out text
)

// AllAttributes lists every attribute flag in SGR emission order.
var AllAttributes = [...]Attribute{
	AttrBold,
	AttrDim,
	AttrItalic,
	AttrUnderline,
	AttrBlink,
	AttrReverse,
	AttrStrikethrough,
}

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

// IsEmpty returns true if no attribute is set.
func (a Attribute) IsEmpty() bool {
	return a == AttrNone
}

// String returns a compact, pipe-separated description of the set.
func (a Attribute) String() string {
	if a == AttrNone {
		return "none"
	}
	names := [...]string{"bold", "dim", "italic", "underline", "blink", "reverse", "strikethrough"}
	out := ""
	for i, attr := range AllAttributes {
		if !a.Has(attr) {
			continue
		}
		if out != "" {
			out += "|"
		}
		out += names[i]
	}
	return out
}
