// Package app runs a view in a terminal. It owns the frame loop: input and
// resize notifications arrive on other goroutines and are posted to the loop,
// which is the only goroutine that touches the renderer, the DOM and the
// animation timeline.
package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dshills/framecore/internal/animation"
	"github.com/dshills/framecore/internal/config"
	"github.com/dshills/framecore/internal/dom"
	"github.com/dshills/framecore/internal/renderer"
	"github.com/dshills/framecore/internal/renderer/backend"
	"github.com/dshills/framecore/internal/renderer/core"
	"github.com/dshills/framecore/internal/renderer/emit"
	"github.com/dshills/framecore/internal/renderer/layout"
	"github.com/dshills/framecore/internal/view"
)

// Options configures the application.
type Options struct {
	// Config supplies renderer and theme settings. Nil uses config.Default().
	Config *config.Config

	// ConfigPath is watched for changes when WatchConfig is set.
	ConfigPath  string
	WatchConfig bool

	// Logger receives frame and lifecycle logs. Nil discards.
	Logger *log.Logger

	// Timeline is shared with views that start transitions. Nil creates one.
	Timeline *animation.Timeline

	// Now is the animation clock. Nil uses time.Now.
	Now func() time.Time

	// Getenv is used for colour mode detection. Nil uses os.Getenv.
	Getenv func(string) string
}

// Application drives a view on a backend.
type Application struct {
	backend backend.Backend
	view    view.View
	opts    Options
	cfg     *config.Config
	logger  *log.Logger

	dom      *dom.DOM
	layout   *layout.Engine
	timeline *animation.Timeline
	renderer *renderer.Renderer
	metrics  *Metrics

	msgs chan message

	started   atomic.Bool
	running   atomic.Bool
	done      chan struct{}
	ready     chan struct{}
	readyOnce sync.Once
}

// New creates an application for v on b.
func New(b backend.Backend, v view.View, opts Options) *Application {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	if opts.Timeline == nil {
		opts.Timeline = animation.New(opts.Now())
	}

	app := &Application{
		backend:  b,
		view:     v,
		opts:     opts,
		cfg:      opts.Config,
		logger:   opts.Logger,
		layout:   layout.New(),
		timeline: opts.Timeline,
		metrics:  NewMetrics(),
		msgs:     make(chan message, 64),
		done:     make(chan struct{}),
		ready:    make(chan struct{}),
	}

	app.dom = dom.New(baseStyle(app.cfg))
	app.dom.SetGeometry(app.layout)
	app.dom.SetAnimator(app.timeline)
	app.dom.SetTabWidth(app.cfg.Renderer.TabWidth)
	return app
}

// Run initialises the backend and runs the frame loop until the user quits,
// ctx is cancelled, SIGINT/SIGTERM arrives or a frame fails. The terminal is
// always restored before Run returns. Run may only be called once.
func (app *Application) Run(ctx context.Context) error {
	if !app.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	app.running.Store(true)
	defer app.running.Store(false)
	defer close(app.done)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	app.backend.OnResize(func(width, height int) {
		app.post(message{kind: msgResize, width: width, height: height})
	})

	err := backend.Run(app.backend, func() error {
		return app.loop(ctx)
	})
	app.dom.Close()
	return err
}

// Ready is closed once the first frame has been written.
func (app *Application) Ready() <-chan struct{} {
	return app.ready
}

// IsRunning reports whether Run is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Renderer returns the renderer. It is nil before Run and must only be used
// from the loop goroutine or after Run returns.
func (app *Application) Renderer() *renderer.Renderer {
	return app.renderer
}

// Timeline returns the animation timeline.
func (app *Application) Timeline() *animation.Timeline {
	return app.timeline
}

// Metrics returns the frame metrics.
func (app *Application) Metrics() *Metrics {
	return app.metrics
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	return app.cfg
}

// post hands a message to the loop. It drops the message once Run is over.
func (app *Application) post(m message) {
	select {
	case app.msgs <- m:
	case <-app.done:
	}
}

// rendererOptions maps the configuration onto renderer options.
func (app *Application) rendererOptions() renderer.Options {
	opts := renderer.DefaultOptions()
	opts.Emit = emitOptions(app.cfg, app.opts.Getenv)
	opts.MaxDirtyRects = app.cfg.Renderer.MaxDirtyRects
	opts.CoalesceThreshold = app.cfg.Renderer.CoalesceThreshold
	opts.Logger = app.logger
	return opts
}

func emitOptions(cfg *config.Config, getenv func(string) string) emit.Options {
	mode, err := emit.ParseColorMode(cfg.Renderer.ColorMode, getenv)
	if err != nil {
		mode = emit.DetectColorMode(getenv)
	}
	return emit.Options{ColorMode: mode, Hyperlinks: cfg.Renderer.Hyperlinks}
}

func baseStyle(cfg *config.Config) core.Style {
	fg, bg, _ := cfg.Theme.Colors()
	return core.Style{Foreground: fg, Background: bg}
}

// BackendOptions returns the screen modes the configuration asks for.
func BackendOptions(cfg *config.Config) backend.Options {
	return backend.Options{
		AltScreen:  cfg.Renderer.AltScreen,
		HideCursor: cfg.Renderer.HideCursor,
	}
}

// NewBackend creates the backend named by the configuration.
func NewBackend(cfg *config.Config) (backend.Backend, error) {
	opts := BackendOptions(cfg)
	if cfg.Renderer.Backend == "stdio" {
		return backend.NewStdio(opts), nil
	}
	tty, err := backend.NewTTY(opts)
	if err != nil {
		return nil, err
	}
	return tty, nil
}
