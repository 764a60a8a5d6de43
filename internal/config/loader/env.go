package loader

import (
	"os"
	"strconv"
	"strings"
)

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "FRAMECORE_")
	mapping map[string]string // Env var -> config path
	environ func() []string
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "FRAMECORE_").
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: make(map[string]string),
		environ: os.Environ,
	}
}

// NewEnvLoaderWithMapping creates a loader with custom environment variable mappings.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]string) *EnvLoader {
	l := NewEnvLoader(prefix)
	for env, path := range mapping {
		l.mapping[env] = path
	}
	return l
}

// Load reads environment variables and returns a configuration map.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)

	for _, env := range l.environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}

		path, mapped := l.mapping[name]
		if !mapped {
			path = l.envToPath(name)
		}
		if path == "" {
			continue
		}
		setByPath(config, path, parseValue(value))
	}

	return config, nil
}

// AddMapping adds a custom environment variable mapping. An empty config
// path makes the loader ignore the variable.
func (l *EnvLoader) AddMapping(envVar, configPath string) {
	l.mapping[envVar] = configPath
}

// envToPath converts FRAMECORE_RENDERER_COLOR_MODE to renderer.color_mode.
// Variables without a section part map to "".
func (l *EnvLoader) envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, l.prefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok || section == "" || key == "" {
		return ""
	}
	return section + "." + key
}

// parseValue attempts to parse the string value into an appropriate type.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	lower := strings.ToLower(s)
	if lower == "true" || lower == "yes" || lower == "on" {
		return true
	}
	if lower == "false" || lower == "no" || lower == "off" {
		return false
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	// Only with a decimal point, to avoid misinterpreting ints.
	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}

	current[parts[len(parts)-1]] = value
}
