package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc receives the result of reloading the watched file.
// Exactly one of cfg and err is non-nil.
type ReloadFunc func(cfg *Config, err error)

// Watcher reloads a configuration file when it changes on disk.
//
// The containing directory is watched rather than the file itself so that
// editors which replace the file on save are still seen. Bursts of events
// are collapsed into one reload after the debounce interval.
type Watcher struct {
	mu sync.Mutex

	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onReload ReloadFunc
	load     func(path string) (*Config, error)

	timer    *time.Timer
	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLoader replaces Load as the reload function.
func WithLoader(load func(path string) (*Config, error)) WatcherOption {
	return func(w *Watcher) {
		if load != nil {
			w.load = load
		}
	}
}

// Watch starts watching path and calls onReload after every change.
func Watch(path string, onReload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		path:     abs,
		debounce: 100 * time.Millisecond,
		onReload: onReload,
		load:     Load,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops watching. Pending reloads are dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	w.closedWg.Wait()
	return w.watcher.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename) {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.onReload(nil, err)
		}
	}
}

// schedule (re)starts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	cfg, err := w.load(w.path)
	if err != nil {
		w.onReload(nil, err)
		return
	}
	w.onReload(cfg, nil)
}
