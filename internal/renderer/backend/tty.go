//go:build unix

package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// TTY implements Backend on the controlling terminal (/dev/tty) using
// tcell's Tty, which owns raw mode and SIGWINCH handling.
type TTY struct {
	opts Options

	mu            sync.Mutex
	tty           tcell.Tty
	resizeHandler func(width, height int)
	started       bool
}

// NewTTY opens the controlling terminal.
func NewTTY(opts Options) (*TTY, error) {
	tty, err := tcell.NewDevTty()
	if err != nil {
		return nil, err
	}
	return &TTY{opts: opts, tty: tty}, nil
}

func (t *TTY) Init() error {
	t.mu.Lock()
	if err := t.tty.Start(); err != nil {
		t.mu.Unlock()
		return err
	}
	t.started = true
	t.mu.Unlock()

	t.tty.NotifyResize(t.handleResize)
	return enterModesOrUndo(t.tty, t.opts, t.Shutdown)
}

func (t *TTY) handleResize() {
	t.mu.Lock()
	handler := t.resizeHandler
	t.mu.Unlock()

	if handler == nil {
		return
	}
	w, h := t.Size()
	if w > 0 && h > 0 {
		handler(w, h)
	}
}

func (t *TTY) Shutdown() {
	t.mu.Lock()
	if !t.started {
		t.mu.Unlock()
		return
	}
	t.started = false
	t.mu.Unlock()

	// The resize goroutine takes t.mu, so tcell must be stopped unlocked.
	t.tty.NotifyResize(nil)
	_ = exitModes(t.tty, t.opts)
	_ = t.tty.Drain()
	_ = t.tty.Stop()
	_ = t.tty.Close()
}

func (t *TTY) Size() (int, int) {
	ws, err := t.tty.WindowSize()
	if err != nil || ws.Width <= 0 || ws.Height <= 0 {
		return 80, 24
	}
	return ws.Width, ws.Height
}

func (t *TTY) OnResize(callback func(width, height int)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resizeHandler = callback
}

func (t *TTY) Write(p []byte) (int, error) {
	if !t.isStarted() {
		return 0, ErrNotInitialized
	}
	return t.tty.Write(p)
}

func (t *TTY) Read(p []byte) (int, error) {
	if !t.isStarted() {
		return 0, ErrNotInitialized
	}
	return t.tty.Read(p)
}

func (t *TTY) isStarted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.started
}
