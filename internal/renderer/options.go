package renderer

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/dshills/framecore/internal/renderer/emit"
)

// Options configures the renderer.
type Options struct {
	Emit emit.Options

	// MaxDirtyRects is the number of merged rectangles above which the
	// whole screen is diffed instead (0 = tracker default).
	MaxDirtyRects int

	// CoalesceThreshold is the dirty screen fraction above which the whole
	// screen is diffed instead (0 = tracker default, 1 = never).
	CoalesceThreshold float64

	// Logger receives a debug line per frame. Nil discards.
	Logger *log.Logger
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		Emit:              emit.DefaultOptions(),
		MaxDirtyRects:     32,
		CoalesceThreshold: 1,
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
