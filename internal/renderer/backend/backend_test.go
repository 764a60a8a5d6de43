package backend

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if _, err := b.Write([]byte("x")); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("write before Init: got %v, want ErrNotInitialized", err)
	}
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendCapturesOutput(t *testing.T) {
	b := NewNullBackend(10, 5)
	b.Init()

	b.Write([]byte("hello "))
	b.Write([]byte("world"))
	if got := string(b.Output()); got != "hello world" {
		t.Errorf("Output() = %q", got)
	}

	b.Reset()
	if len(b.Output()) != 0 {
		t.Error("Reset should discard output")
	}
}

func TestNullBackendResize(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()

	var gotW, gotH int
	b.OnResize(func(w, h int) {
		gotW, gotH = w, h
	})
	b.SetSize(100, 30)

	if gotW != 100 || gotH != 30 {
		t.Errorf("resize callback got (%d, %d)", gotW, gotH)
	}
	if w, h := b.Size(); w != 100 || h != 30 {
		t.Errorf("Size() = (%d, %d)", w, h)
	}
}

func TestNullBackendInput(t *testing.T) {
	b := NewNullBackend(80, 24)
	b.Init()
	b.Feed([]byte("q"))

	p := make([]byte, 8)
	n, err := b.Read(p)
	if err != nil || string(p[:n]) != "q" {
		t.Fatalf("Read() = %q, %v", p[:n], err)
	}

	b.Shutdown()
	if _, err := b.Read(p); err != io.EOF {
		t.Errorf("Read after Shutdown = %v, want io.EOF", err)
	}
	b.Feed([]byte("ignored"))
	b.Shutdown()
}

func TestRunShutsDownOnSuccess(t *testing.T) {
	b := NewNullBackend(80, 24)
	called := false

	err := Run(b, func() error {
		called = true
		if !b.Initialized() {
			t.Error("backend should be initialized inside Run")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !called {
		t.Error("fn not called")
	}
	if b.ShutdownCount() != 1 {
		t.Errorf("Shutdown called %d times, want 1", b.ShutdownCount())
	}
}

func TestRunShutsDownOnError(t *testing.T) {
	b := NewNullBackend(80, 24)
	want := errors.New("frame failed")

	err := Run(b, func() error { return want })

	if !errors.Is(err, want) {
		t.Errorf("Run error = %v, want %v", err, want)
	}
	if b.ShutdownCount() != 1 {
		t.Errorf("Shutdown called %d times, want 1", b.ShutdownCount())
	}
}

func TestRunShutsDownOnPanic(t *testing.T) {
	b := NewNullBackend(80, 24)

	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
		if b.ShutdownCount() != 1 {
			t.Errorf("Shutdown called %d times, want 1", b.ShutdownCount())
		}
	}()

	Run(b, func() error { panic("boom") })
	t.Fatal("Run should re-panic")
}

type failingInit struct {
	*NullBackend
}

func (failingInit) Init() error { return errors.New("no tty") }

func TestRunInitError(t *testing.T) {
	b := failingInit{NewNullBackend(1, 1)}
	called := false

	err := Run(b, func() error {
		called = true
		return nil
	})

	if err == nil {
		t.Fatal("expected init error")
	}
	if called {
		t.Error("fn must not run when Init fails")
	}
	if b.ShutdownCount() != 0 {
		t.Error("Shutdown must not run when Init fails")
	}
}

func TestModes(t *testing.T) {
	var buf bytes.Buffer
	if err := enterModes(&buf, DefaultOptions()); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\x1b[?1049h\x1b[?25l\x1b[?7l" {
		t.Errorf("enter = %q", got)
	}

	buf.Reset()
	exitModes(&buf, DefaultOptions())
	if got := buf.String(); got != "\x1b[0m\x1b[?7h\x1b[?25h\x1b[?1049l" {
		t.Errorf("exit = %q", got)
	}

	buf.Reset()
	enterModes(&buf, Options{})
	if got := buf.String(); got != "\x1b[?7l" {
		t.Errorf("enter without modes = %q", got)
	}
}

type brokenWriter struct{}

var errBroken = errors.New("broken pipe")

func (brokenWriter) Write([]byte) (int, error) { return 0, errBroken }

func TestEnterModesOrUndo(t *testing.T) {
	undone := 0
	err := enterModesOrUndo(brokenWriter{}, DefaultOptions(), func() { undone++ })
	if !errors.Is(err, errBroken) {
		t.Errorf("err = %v, want broken pipe", err)
	}
	if undone != 1 {
		t.Errorf("undo ran %d times, want 1", undone)
	}

	var buf bytes.Buffer
	undone = 0
	if err := enterModesOrUndo(&buf, DefaultOptions(), func() { undone++ }); err != nil {
		t.Fatal(err)
	}
	if undone != 0 {
		t.Error("undo must not run on success")
	}
	if buf.Len() == 0 {
		t.Error("modes not written")
	}
}
