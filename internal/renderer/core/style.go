package core

// Style is the pen used to paint cells: colours plus attributes.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	return Style{Foreground: fg}
}

// WithForeground returns a new style with the given foreground color.
func (s Style) WithForeground(fg Color) Style {
	s.Foreground = fg
	return s
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// WithAttributes returns a new style with the given attributes.
func (s Style) WithAttributes(attrs Attribute) Style {
	s.Attributes = attrs
	return s
}

// Bold returns a new style with bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// Dim returns a new style with dim attribute added.
func (s Style) Dim() Style {
	s.Attributes |= AttrDim
	return s
}

// Italic returns a new style with italic attribute added.
func (s Style) Italic() Style {
	s.Attributes |= AttrItalic
	return s
}

// Underline returns a new style with underline attribute added.
func (s Style) Underline() Style {
	s.Attributes |= AttrUnderline
	return s
}

// Strikethrough returns a new style with strikethrough attribute added.
func (s Style) Strikethrough() Style {
	s.Attributes |= AttrStrikethrough
	return s
}

// Merge combines two styles.
// The other style takes precedence for set colours. Attributes are OR'd together.
func (s Style) Merge(other Style) Style {
	result := s
	if other.Foreground.Set {
		result.Foreground = other.Foreground
	}
	if other.Background.Set {
		result.Background = other.Background
	}
	result.Attributes |= other.Attributes
	return result
}

// IsDefault returns true if this is the default style.
func (s Style) IsDefault() bool {
	return s == Style{}
}
