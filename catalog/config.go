package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spigot-labs/spigot/should"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of an argument catalog.
type Config struct {
	Arguments []ArgumentConfig `json:"arguments" yaml:"arguments"`
}

// ArgumentConfig declares one named argument: where it comes from and the
// pipes to run over it, in order. An argument's index is its position in the
// arguments list.
type ArgumentConfig struct {
	Name   string       `json:"name"   yaml:"name"`
	Source string       `json:"source" yaml:"source"`
	Pipes  []PipeConfig `json:"pipes"  yaml:"pipes"`
}

// PipeConfig declares one pipe by type plus its parameters. The parameter
// keys a type understands are checked by Build; see the package
// documentation for the full table.
type PipeConfig struct {
	Type       string         `json:"type"       yaml:"type"`
	Parameters map[string]any `json:"parameters" yaml:"parameters"`
}

// Load reads a catalog config from a .yaml, .yml, or .json file. JSON is a
// YAML subset, so one parser covers all three.
func Load(path string) (*Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path) //nolint:gosec // Catalog paths come from the caller.
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file %q: %w", path, err)
	}
	defer should.Close(f, "failed to close catalog file")

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %q: %w", path, err)
	}

	return &cfg, nil
}

// LoadFromBytes parses a catalog config from raw YAML or JSON bytes.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse catalog config: %w", err)
	}

	return &cfg, nil
}

// LoadFromFS reads a catalog config from a file system, typically an
// embed.FS carrying the catalog alongside the binary.
func LoadFromFS(fsys fs.FS, path string) (*Config, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog from fs: %w", err)
	}

	return LoadFromBytes(data)
}
