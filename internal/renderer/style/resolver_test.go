package style

import (
	"testing"

	"github.com/dshills/framecore/internal/renderer/core"
)

func TestResolverRootUsesBase(t *testing.T) {
	base := core.NewStyle(core.ColorWhite).WithBackground(core.ColorBlack)
	r := NewResolver(base)

	got := r.Resolve(nil, Style{})
	if got.Pen != base {
		t.Errorf("root pen = %v, want base %v", got.Pen, base)
	}
}

func TestResolverInheritance(t *testing.T) {
	r := NewResolver(core.DefaultStyle())
	parent := r.Resolve(nil, Style{
		Foreground: core.ColorRed,
		Background: core.ColorBlue,
		Attributes: core.AttrBold,
	})

	tests := []struct {
		name string
		decl Style
		want core.Style
	}{
		{
			name: "inherits everything",
			decl: Style{},
			want: core.Style{Foreground: core.ColorRed, Background: core.ColorBlue, Attributes: core.AttrBold},
		},
		{
			name: "overrides foreground",
			decl: Style{Foreground: core.ColorGreen},
			want: core.Style{Foreground: core.ColorGreen, Background: core.ColorBlue, Attributes: core.AttrBold},
		},
		{
			name: "adds attribute",
			decl: Style{Attributes: core.AttrItalic},
			want: core.Style{Foreground: core.ColorRed, Background: core.ColorBlue, Attributes: core.AttrBold | core.AttrItalic},
		},
		{
			name: "clears attribute",
			decl: Style{ClearAttributes: core.AttrBold, Attributes: core.AttrUnderline},
			want: core.Style{Foreground: core.ColorRed, Background: core.ColorBlue, Attributes: core.AttrUnderline},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Resolve(&parent, tt.decl)
			if got.Pen != tt.want {
				t.Errorf("pen = %v, want %v", got.Pen, tt.want)
			}
		})
	}
}

func TestResolverKeepsBox(t *testing.T) {
	r := NewResolver(core.DefaultStyle())
	box := Box{Direction: Row, Width: 10, Padding: Uniform(1), Border: true}

	got := r.Resolve(nil, Style{Box: box})
	if got.Box != box {
		t.Errorf("box = %+v, want %+v", got.Box, box)
	}
}

func TestBoxInner(t *testing.T) {
	tests := []struct {
		name string
		box  Box
		want core.Rect
	}{
		{"plain", Box{}, core.NewRect(0, 0, 10, 5)},
		{"border", Box{Border: true}, core.NewRect(1, 1, 8, 3)},
		{"border and padding", Box{Border: true, Padding: Edges{Left: 2}}, core.NewRect(3, 1, 6, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.Inner(core.NewRect(0, 0, 10, 5)); got != tt.want {
				t.Errorf("Inner = %v, want %v", got, tt.want)
			}
		})
	}
}
