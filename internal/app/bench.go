package app

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/framecore/internal/animation"
	"github.com/dshills/framecore/internal/config"
	"github.com/dshills/framecore/internal/renderer"
	"github.com/dshills/framecore/internal/renderer/backend"
)

// BenchOptions configures an offscreen run of the demo.
type BenchOptions struct {
	Width, Height int
	Frames        int

	// Step is how far the simulated clock advances per frame.
	Step time.Duration

	// KeyEvery presses '+' before every n-th frame. Zero never does.
	KeyEvery int

	// Pulse starts the untargeted background pulse.
	Pulse bool

	// ForceEvery requests a full redraw every n-th frame. Zero never does.
	ForceEvery int

	Config *config.Config
	Logger *log.Logger

	// Out receives the emitted bytes. Nil discards them.
	Out io.Writer
}

// DefaultBenchOptions returns an 80x24 run of 600 frames at 60 fps.
func DefaultBenchOptions() BenchOptions {
	return BenchOptions{
		Width:    80,
		Height:   24,
		Frames:   600,
		Step:     time.Second / 60,
		KeyEvery: 30,
	}
}

// Bench renders the demo without a terminal on a simulated clock and returns
// the collected metrics.
func Bench(opts BenchOptions) (MetricsSnapshot, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return MetricsSnapshot{}, errors.New("bench: size must be positive")
	}
	if opts.Step <= 0 {
		opts.Step = time.Second / 60
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	now := time.Unix(0, 0)
	tl := animation.New(now)
	demo := NewDemo(tl, opts.Config.Theme)

	app := New(backend.NewNullBackend(opts.Width, opts.Height), demo, Options{
		Config:   opts.Config,
		Logger:   opts.Logger,
		Timeline: tl,
		Now:      func() time.Time { return now },
		Getenv:   func(string) string { return "" },
	})
	app.renderer = renderer.New(out, opts.Width, opts.Height, app.dom, app.layout, app.rendererOptions())
	app.renderer.SetAnimation(tl)
	defer app.dom.Close()

	if opts.Pulse {
		demo.HandleKey(backend.Event{Key: backend.KeyRune, Rune: 'p'})
	}

	for i := 0; i < opts.Frames; i++ {
		now = now.Add(opts.Step)
		tl.Update(now)

		if opts.KeyEvery > 0 && i > 0 && i%opts.KeyEvery == 0 {
			if _, err := app.handleKey(backend.Event{Key: backend.KeyRune, Rune: '+'}); err != nil {
				return app.metrics.Snapshot(), err
			}
		}
		force := opts.ForceEvery > 0 && i > 0 && i%opts.ForceEvery == 0
		if err := app.frame(force); err != nil {
			return app.metrics.Snapshot(), err
		}
	}
	return app.metrics.Snapshot(), nil
}
