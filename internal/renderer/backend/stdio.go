package backend

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// Stdio implements Backend on the process's standard input and output using
// golang.org/x/term for raw mode and size queries.
type Stdio struct {
	in   *os.File
	out  *os.File
	opts Options

	mu            sync.Mutex
	oldState      *term.State
	resizeHandler func(width, height int)
	stopResize    func()
	started       bool
}

// NewStdio creates a backend on os.Stdin and os.Stdout.
func NewStdio(opts Options) *Stdio {
	return &Stdio{in: os.Stdin, out: os.Stdout, opts: opts}
}

func (s *Stdio) Init() error {
	s.mu.Lock()
	fd := int(s.in.Fd())
	if !term.IsTerminal(fd) {
		s.mu.Unlock()
		return ErrNotTerminal
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.oldState = old
	s.started = true
	s.stopResize = watchResize(s.handleResize)
	s.mu.Unlock()

	return enterModesOrUndo(s.out, s.opts, s.Shutdown)
}

func (s *Stdio) handleResize() {
	s.mu.Lock()
	handler := s.resizeHandler
	s.mu.Unlock()

	if handler == nil {
		return
	}
	w, h := s.Size()
	handler(w, h)
}

func (s *Stdio) Shutdown() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	stop, old := s.stopResize, s.oldState
	s.stopResize, s.oldState = nil, nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	_ = exitModes(s.out, s.opts)
	if old != nil {
		_ = term.Restore(int(s.in.Fd()), old)
	}
}

func (s *Stdio) Size() (int, int) {
	w, h, err := term.GetSize(int(s.out.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}

func (s *Stdio) OnResize(callback func(width, height int)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resizeHandler = callback
}

func (s *Stdio) Write(p []byte) (int, error) {
	if !s.isStarted() {
		return 0, ErrNotInitialized
	}
	return s.out.Write(p)
}

func (s *Stdio) Read(p []byte) (int, error) {
	if !s.isStarted() {
		return 0, io.EOF
	}
	return s.in.Read(p)
}

func (s *Stdio) isStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}
