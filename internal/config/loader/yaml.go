package loader

import "gopkg.in/yaml.v3"

// YAMLLoader loads configuration from YAML files.
type YAMLLoader struct {
	fileLoader
}

// NewYAMLLoader creates a new YAML loader for the given path.
func NewYAMLLoader(path string) *YAMLLoader {
	return NewYAMLLoaderWithFS(DefaultFS(), path)
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{fileLoader{fs: fs, path: path, parse: yaml.Unmarshal}}
}
