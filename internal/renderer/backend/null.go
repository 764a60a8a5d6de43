package backend

import (
	"bytes"
	"io"
	"sync"
)

// NullBackend is an in-memory backend for tests and offscreen rendering.
// Written bytes are captured and input is fed with Feed.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	out           bytes.Buffer
	resizeHandler func(width, height int)
	initialized   bool
	shutdownCount int

	input  chan []byte
	closed bool
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		input:  make(chan []byte, 64),
	}
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
	return nil
}

func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shutdownCount++
	b.initialized = false
	if !b.closed {
		b.closed = true
		close(b.input)
	}
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) OnResize(callback func(width, height int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resizeHandler = callback
}

func (b *NullBackend) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return 0, ErrNotInitialized
	}
	return b.out.Write(p)
}

// Read returns the next chunk passed to Feed, or io.EOF after Shutdown.
func (b *NullBackend) Read(p []byte) (int, error) {
	chunk, ok := <-b.input
	if !ok {
		return 0, io.EOF
	}
	return copy(p, chunk), nil
}

// Feed queues input bytes for Read. It is a no-op after Shutdown.
func (b *NullBackend) Feed(p []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.input <- append([]byte(nil), p...)
}

// SetSize changes the dimensions and fires the resize callback.
func (b *NullBackend) SetSize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	handler := b.resizeHandler
	b.mu.Unlock()

	if handler != nil {
		handler(width, height)
	}
}

// Output returns a copy of everything written so far.
func (b *NullBackend) Output() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.out.Bytes()...)
}

// Reset discards captured output.
func (b *NullBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.Reset()
}

// Initialized reports whether Init has been called without a later Shutdown.
func (b *NullBackend) Initialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

// ShutdownCount returns how many times Shutdown has been called.
func (b *NullBackend) ShutdownCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shutdownCount
}
