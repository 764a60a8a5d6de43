package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dshills/framecore/internal/config/loader"
)

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "framecore.toml")
	if err := os.WriteFile(path, []byte("[renderer]\ntab_width = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := make(chan *Config, 4)
	load := func(p string) (*Config, error) {
		return LoadFS(loader.OSFS{}, p, nil)
	}
	w, err := Watch(path, func(cfg *Config, err error) {
		if err != nil {
			t.Errorf("reload error: %v", err)
			return
		}
		got <- cfg
	}, WithDebounce(10*time.Millisecond), WithLoader(load))
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[renderer]\ntab_width = 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-got:
		if cfg.Renderer.TabWidth != 6 {
			t.Errorf("TabWidth = %d, want 6", cfg.Renderer.TabWidth)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after write")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "framecore.toml")

	got := make(chan struct{}, 1)
	w, err := Watch(path, func(*Config, error) {
		got <- struct{}{}
	}, WithDebounce(time.Millisecond))
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-got:
		t.Error("reload for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	w, err := Watch(filepath.Join(t.TempDir(), "c.toml"), func(*Config, error) {})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
