package emit

import (
	"fmt"
	"strings"
)

// ColorMode selects how colours are encoded.
type ColorMode uint8

const (
	// ColorModeTrueColor emits 24-bit 38;2 / 48;2 sequences.
	ColorModeTrueColor ColorMode = iota
	// ColorMode256 quantises to the xterm-256 palette.
	ColorMode256
)

// String returns the configuration name of the mode.
func (m ColorMode) String() string {
	switch m {
	case ColorModeTrueColor:
		return "truecolor"
	case ColorMode256:
		return "256"
	default:
		return "unknown"
	}
}

// ParseColorMode parses a configured colour mode. "auto" and "" defer to
// DetectColorMode with the supplied environment lookup.
func ParseColorMode(s string, getenv func(string) string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DetectColorMode(getenv), nil
	case "truecolor", "24bit":
		return ColorModeTrueColor, nil
	case "256":
		return ColorMode256, nil
	default:
		return ColorModeTrueColor, fmt.Errorf("unknown color mode %q", s)
	}
}

// DetectColorMode determines terminal colour capability from the environment.
func DetectColorMode(getenv func(string) string) ColorMode {
	colorterm := getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	for _, v := range []string{
		"KITTY_WINDOW_ID",
		"KONSOLE_VERSION",
		"ITERM_SESSION_ID",
		"ALACRITTY_WINDOW_ID",
		"WEZTERM_PANE",
	} {
		if getenv(v) != "" {
			return ColorModeTrueColor
		}
	}

	term := getenv("TERM")
	if strings.Contains(term, "truecolor") ||
		strings.Contains(term, "24bit") ||
		strings.Contains(term, "direct") {
		return ColorModeTrueColor
	}

	return ColorMode256
}
