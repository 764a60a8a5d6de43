package app

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/dshills/framecore/internal/config"
	"github.com/dshills/framecore/internal/renderer"
	"github.com/dshills/framecore/internal/renderer/backend"
	"github.com/dshills/framecore/internal/view"
)

type msgKind int

const (
	msgKey msgKind = iota
	msgResize
	msgReload
	msgInputClosed
)

// message is posted to the loop by the input, resize and watcher goroutines.
type message struct {
	kind          msgKind
	key           backend.Event
	width, height int
	cfg           *config.Config
	err           error
}

// loop is the frame loop. It runs with the backend initialised.
func (app *Application) loop(ctx context.Context) error {
	width, height := app.backend.Size()
	app.renderer = renderer.New(app.backend, width, height, app.dom, app.layout, app.rendererOptions())
	app.renderer.SetAnimation(app.timeline)

	if app.opts.WatchConfig && app.opts.ConfigPath != "" {
		w, err := config.Watch(app.opts.ConfigPath, func(cfg *config.Config, err error) {
			app.post(message{kind: msgReload, cfg: cfg, err: err})
		})
		if err != nil {
			app.logger.Warn("config watch failed", "path", app.opts.ConfigPath, "err", err)
		} else {
			defer w.Close()
		}
	}

	go app.readInput()

	if err := app.frame(false); err != nil {
		return err
	}
	app.readyOnce.Do(func() { close(app.ready) })

	ticker := time.NewTicker(app.cfg.Renderer.IdleTick.Duration)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			app.logger.Info("shutting down", "reason", context.Cause(ctx))
			return nil

		case <-ticker.C:
			app.timeline.Update(app.opts.Now())
			if err := app.frame(false); err != nil {
				return err
			}

		case m := <-app.msgs:
			force, err := app.handle(m)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				return err
			}
			if err := app.frame(force); err != nil {
				return err
			}
		}
	}
}

// handle applies one message. It reports whether the next frame must be a
// full redraw.
func (app *Application) handle(m message) (bool, error) {
	switch m.kind {
	case msgKey:
		return app.handleKey(m.key)

	case msgResize:
		app.renderer.Resize(m.width, m.height)
		return false, nil

	case msgReload:
		if m.err != nil {
			app.logger.Error("config reload failed", "err", m.err)
			return false, nil
		}
		app.applyConfig(m.cfg)
		return true, nil

	case msgInputClosed:
		if m.err != nil {
			return false, &InputError{Err: m.err}
		}
		return false, ErrQuit
	}
	return false, nil
}

// handleKey handles the built-in keys and forwards the rest to the view.
func (app *Application) handleKey(ev backend.Event) (bool, error) {
	switch {
	case ev.IsCtrl('c'):
		return false, ErrQuit
	case ev.Key == backend.KeyRune && ev.Mod == backend.ModNone && ev.Rune == 'q':
		return false, ErrQuit
	case ev.Key == backend.KeyRune && ev.Mod == backend.ModNone && ev.Rune == 'r':
		return true, nil
	}

	if h, ok := app.view.(view.KeyHandler); ok && h.HandleKey(ev) {
		app.renderer.Invalidate()
	}
	return false, nil
}

// applyConfig switches to a reloaded configuration. Screen modes and the
// backend choice only take effect on restart.
func (app *Application) applyConfig(cfg *config.Config) {
	app.cfg = cfg
	app.dom.SetBase(baseStyle(cfg))
	app.dom.SetTabWidth(cfg.Renderer.TabWidth)
	app.renderer.SetEmitOptions(emitOptions(cfg, app.opts.Getenv))
	app.renderer.Invalidate()
	app.logger.Info("config reloaded", "path", app.opts.ConfigPath)
}

// frame renders one frame and records it. Frame errors end the loop; they
// are logged here and nowhere else.
func (app *Application) frame(force bool) error {
	start := time.Now()
	stats, err := app.renderer.RenderFrame(app.view, force)
	if err != nil {
		app.metrics.RecordFailure()
		app.logger.Error("frame failed", "err", err)
		return err
	}
	app.metrics.RecordFrame(stats, time.Since(start))
	return nil
}

// readInput decodes backend input into key messages until the backend is
// shut down.
func (app *Application) readInput() {
	buf := make([]byte, 256)
	var pending []byte
	for {
		n, err := app.backend.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...)
			events, used := backend.Decode(pending)
			pending = append(pending[:0], pending[used:]...)
			for _, ev := range events {
				app.post(message{kind: msgKey, key: ev})
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			app.post(message{kind: msgInputClosed, err: err})
			return
		}
	}
}
