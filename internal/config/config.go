// Package config loads framecore settings. Sources are layered: built-in
// defaults, then a TOML or YAML file, then FRAMECORE_ environment variables.
// A missing file is not an error.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/dshills/framecore/internal/config/loader"
)

const (
	// EnvPrefix is the prefix of environment overrides.
	EnvPrefix = "FRAMECORE_"

	// EnvConfigPath names the config file when no path is given.
	EnvConfigPath = "FRAMECORE_CONFIG"
)

// Config is the complete configuration.
type Config struct {
	Renderer RendererConfig `toml:"renderer" yaml:"renderer"`
	Theme    ThemeConfig    `toml:"theme" yaml:"theme"`
	Log      LogConfig      `toml:"log" yaml:"log"`
}

// RendererConfig controls terminal output.
type RendererConfig struct {
	// ColorMode is "auto", "truecolor" or "256".
	ColorMode string `toml:"color_mode" yaml:"color_mode"`

	// Backend is "tty" (tcell) or "stdio" (x/term on stdin/stdout).
	Backend string `toml:"backend" yaml:"backend"`

	AltScreen  bool `toml:"alt_screen" yaml:"alt_screen"`
	HideCursor bool `toml:"hide_cursor" yaml:"hide_cursor"`
	Hyperlinks bool `toml:"hyperlinks" yaml:"hyperlinks"`

	// IdleTick is the interval between frames while nothing happens.
	IdleTick Duration `toml:"idle_tick" yaml:"idle_tick"`

	MaxDirtyRects     int     `toml:"max_dirty_rects" yaml:"max_dirty_rects"`
	CoalesceThreshold float64 `toml:"coalesce_threshold" yaml:"coalesce_threshold"`
	TabWidth          int     `toml:"tab_width" yaml:"tab_width"`
}

// ThemeConfig holds colour strings: "#rgb", "#rrggbb" or a colour name.
type ThemeConfig struct {
	Foreground string `toml:"foreground" yaml:"foreground"`
	Background string `toml:"background" yaml:"background"`
	Accent     string `toml:"accent" yaml:"accent"`
}

// LogConfig controls the log file.
type LogConfig struct {
	// Level is "debug", "info", "warn" or "error".
	Level string `toml:"level" yaml:"level"`
	// File is the log destination; empty disables logging.
	File string `toml:"file" yaml:"file"`
}

// Duration is a time.Duration written as a Go duration string ("50ms").
type Duration struct {
	time.Duration
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(n *yaml.Node) error {
	return d.UnmarshalText([]byte(n.Value))
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Renderer: RendererConfig{
			ColorMode:         "auto",
			Backend:           "tty",
			AltScreen:         true,
			HideCursor:        true,
			Hyperlinks:        true,
			IdleTick:          Duration{50 * time.Millisecond},
			MaxDirtyRects:     32,
			CoalesceThreshold: 1,
			TabWidth:          4,
		},
		Theme: ThemeConfig{
			Foreground: "#d0d0d0",
			Background: "#1c1c1c",
			Accent:     "#5fafff",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path (may be empty or missing) from the OS file system and
// applies environment overrides.
func Load(path string) (*Config, error) {
	env := loader.NewEnvLoader(EnvPrefix)
	env.AddMapping(EnvConfigPath, "")
	return LoadFS(loader.DefaultFS(), path, env)
}

// DefaultPath returns $FRAMECORE_CONFIG, or framecore.toml under the user
// config directory. It returns "" when neither can be determined.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "framecore", "framecore.toml")
}

// LoadFS layers defaults, the file at path and env, then validates.
func LoadFS(fsys loader.FileSystem, path string, env loader.Loader) (*Config, error) {
	var merged map[string]any
	if path != "" {
		l, err := loader.ForFile(fsys, path)
		if err != nil {
			return nil, err
		}
		file, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, file)
	}
	if env != nil {
		vars, err := env.Load()
		if err != nil {
			return nil, fmt.Errorf("loading environment: %w", err)
		}
		merged = loader.DeepMerge(merged, vars)
	}

	cfg := Default()
	if err := cfg.apply(merged); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// apply decodes a layered map over c. The map is re-encoded as YAML so that
// scalars from any source decode into the typed fields.
func (c *Config) apply(m map[string]any) error {
	if len(m) == 0 {
		return nil
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("decoding config: %w", err)
	}
	return nil
}

// TOML returns the configuration as a TOML document.
func (c *Config) TOML() (string, error) {
	b, err := toml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
