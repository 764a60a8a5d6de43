package style

import "github.com/dshills/framecore/internal/renderer/core"

// Resolver cascades declared styles. The base pen (the theme) applies to the
// root; every other element inherits its parent's resolved pen.
type Resolver struct {
	base core.Style
}

// NewResolver creates a resolver with the given base pen.
func NewResolver(base core.Style) *Resolver {
	return &Resolver{base: base}
}

// SetBase replaces the base pen.
func (r *Resolver) SetBase(base core.Style) {
	r.base = base
}

// Base returns the base pen.
func (r *Resolver) Base() core.Style {
	return r.base
}

// Resolve computes the resolved style of an element with declared style decl.
// parent is nil for the root.
func (r *Resolver) Resolve(parent *Resolved, decl Style) Resolved {
	pen := r.base
	if parent != nil {
		pen = parent.Pen
	}

	if !decl.Foreground.IsNone() {
		pen.Foreground = decl.Foreground
	}
	if !decl.Background.IsNone() {
		pen.Background = decl.Background
	}
	pen.Attributes = pen.Attributes.Without(decl.ClearAttributes).With(decl.Attributes)

	return Resolved{Pen: pen, Box: decl.Box}
}
