// Package backend provides the terminal byte sink for the renderer: raw mode
// and alternate screen handling, size queries, resize notification and input.
// The emitter is backend-agnostic and only ever calls Write.
package backend

import (
	"errors"
	"fmt"
	"io"
)

// Errors returned by backends.
var (
	// ErrNotInitialized is returned by I/O methods called before Init.
	ErrNotInitialized = errors.New("backend not initialized")

	// ErrNotTerminal is returned when the backend's file is not a terminal.
	ErrNotTerminal = errors.New("not a terminal")
)

// Backend defines the interface for terminal backends.
type Backend interface {
	// Init enters raw mode and prepares the screen.
	// Must be called before any other methods.
	Init() error

	// Shutdown restores terminal state. It is safe to call more than once.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// OnResize registers a callback for terminal resize events.
	// The callback may run on any goroutine.
	OnResize(callback func(width, height int))

	// Write writes raw bytes to the terminal.
	io.Writer

	// Read reads raw input bytes. It blocks until input is available and
	// returns io.EOF after Shutdown.
	io.Reader
}

// Options controls the screen modes a backend enables at Init.
type Options struct {
	AltScreen  bool
	HideCursor bool
}

// DefaultOptions enables the alternate screen and hides the cursor.
func DefaultOptions() Options {
	return Options{AltScreen: true, HideCursor: true}
}

// Run initialises b, calls fn and always shuts b down afterwards, including
// when fn returns an error or panics. A panic is re-raised after the
// terminal is restored.
func Run(b Backend, fn func() error) (err error) {
	if err := b.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer func() {
		r := recover()
		b.Shutdown()
		if r != nil {
			panic(r)
		}
	}()
	return fn()
}
