package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/dshills/framecore/internal/renderer/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// FieldError describes one invalid setting.
type FieldError struct {
	Field   string
	Value   any
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s = %v: %s", e.Field, e.Value, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidConfig
}

// Validate checks every field and returns all problems joined.
func (c *Config) Validate() error {
	var errs []error
	bad := func(field string, value any, msg string) {
		errs = append(errs, &FieldError{Field: field, Value: value, Message: msg})
	}

	r := c.Renderer
	if !slices.Contains([]string{"auto", "truecolor", "24bit", "256"}, r.ColorMode) {
		bad("renderer.color_mode", r.ColorMode, "must be auto, truecolor or 256")
	}
	if !slices.Contains([]string{"tty", "stdio"}, r.Backend) {
		bad("renderer.backend", r.Backend, "must be tty or stdio")
	}
	if r.IdleTick.Duration <= 0 {
		bad("renderer.idle_tick", r.IdleTick, "must be positive")
	}
	if r.MaxDirtyRects < 1 {
		bad("renderer.max_dirty_rects", r.MaxDirtyRects, "must be at least 1")
	}
	if r.CoalesceThreshold <= 0 || r.CoalesceThreshold > 1 {
		bad("renderer.coalesce_threshold", r.CoalesceThreshold, "must be in (0, 1]")
	}
	if r.TabWidth < 1 || r.TabWidth > 16 {
		bad("renderer.tab_width", r.TabWidth, "must be between 1 and 16")
	}

	for _, f := range []struct {
		name, value string
	}{
		{"theme.foreground", c.Theme.Foreground},
		{"theme.background", c.Theme.Background},
		{"theme.accent", c.Theme.Accent},
	} {
		if f.value == "" {
			continue
		}
		if _, err := core.ParseColor(f.value); err != nil {
			bad(f.name, f.value, err.Error())
		}
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		bad("log.level", c.Log.Level, "must be debug, info, warn or error")
	}

	return errors.Join(errs...)
}

// Colors returns the parsed theme colours. An empty string is the terminal
// default. Call after Validate.
func (t ThemeConfig) Colors() (fg, bg, accent core.Color) {
	parse := func(s string) core.Color {
		if s == "" {
			return core.ColorNone
		}
		c, _ := core.ParseColor(s)
		return c
	}
	return parse(t.Foreground), parse(t.Background), parse(t.Accent)
}
