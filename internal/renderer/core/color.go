package core

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an optional 24-bit colour.
// The zero value is ColorNone, meaning "use the terminal default".
type Color struct {
	R, G, B uint8
	// Set is false for the terminal default colour.
	Set bool
}

// ColorNone represents the terminal's default colour.
var ColorNone = Color{}

// Common colors.
var (
	ColorBlack   = RGB(0, 0, 0)
	ColorWhite   = RGB(255, 255, 255)
	ColorRed     = RGB(255, 0, 0)
	ColorGreen   = RGB(0, 255, 0)
	ColorBlue    = RGB(0, 0, 255)
	ColorYellow  = RGB(255, 255, 0)
	ColorCyan    = RGB(0, 255, 255)
	ColorMagenta = RGB(255, 0, 255)
	ColorGray    = RGB(128, 128, 128)
)

// RGB creates a colour from RGB components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Set: true}
}

// ColorFromHex creates a color from a hex string.
// Supports formats: "#RGB", "#RRGGBB", "RGB", "RRGGBB".
func ColorFromHex(hex string) (Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	if len(hex) != 4 && len(hex) != 7 {
		return Color{}, fmt.Errorf("invalid hex color length: %s", hex)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color: %s", hex)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// ParseColor parses a colour specification.
// Empty, "default" and "none" yield ColorNone; strings starting with '#'
// are hex; anything else is looked up as a W3C/X11 colour name.
func ParseColor(spec string) (Color, error) {
	spec = strings.TrimSpace(spec)
	switch strings.ToLower(spec) {
	case "", "default", "none":
		return ColorNone, nil
	}
	if strings.HasPrefix(spec, "#") {
		return ColorFromHex(spec)
	}

	tc := tcell.GetColor(strings.ToLower(spec))
	if tc == tcell.ColorDefault {
		return Color{}, fmt.Errorf("unknown color name: %s", spec)
	}
	r, g, b := tc.RGB()
	if r < 0 || g < 0 || b < 0 {
		return Color{}, fmt.Errorf("color %s has no RGB value", spec)
	}
	return RGB(uint8(r), uint8(g), uint8(b)), nil
}

// IsNone returns true if this is the terminal default colour.
func (c Color) IsNone() bool {
	return !c.Set
}

// Blend interpolates between c and other in CIE-L*a*b* space.
// Amount 0.0 = c, 1.0 = other. Blending with ColorNone snaps at the midpoint.
func (c Color) Blend(other Color, amount float64) Color {
	if amount <= 0 {
		return c
	}
	if amount >= 1 {
		return other
	}
	if !c.Set || !other.Set {
		if amount < 0.5 {
			return c
		}
		return other
	}
	from := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
	to := colorful.Color{R: float64(other.R) / 255, G: float64(other.G) / 255, B: float64(other.B) / 255}
	r, g, b := from.BlendLab(to, amount).Clamped().RGB255()
	return RGB(r, g, b)
}

// String returns a string representation of the color.
func (c Color) String() string {
	if !c.Set {
		return "default"
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
