// Package config handles parsing and validation of tsgate configuration files.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tsgate/tsgate/internal/platform/logger"
	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
var ErrConfigNotFound = errors.New("no tsgate.yaml found. Run 'tsgate init' first")

// knownParsers are the parser names a tool may reference.
var knownParsers = map[string]bool{
	"tsc":       true,
	"lint-json": true,
	"bun-test":  true,
	"generic":   true,
}

// Config is the top-level project configuration.
type Config struct {
	Version  int      `yaml:"version"`
	Defaults Defaults `yaml:"defaults"`
	Tools    []Tool   `yaml:"tools"`
}

// Defaults holds default values applied to tools missing optional fields.
type Defaults struct {
	Timeout   time.Duration `yaml:"timeout"`
	Container string        `yaml:"container"`
}

// Tool represents a single wrapped-tool configuration.
type Tool struct {
	Name      string        `yaml:"name"`
	Command   string        `yaml:"command"`
	Parser    string        `yaml:"parser,omitempty"`
	Config    string        `yaml:"config,omitempty"` // tool config file, e.g. tsconfig.json
	Container string        `yaml:"container,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`
}

// ParserName returns the parser to use for this tool, defaulting to generic.
func (t *Tool) ParserName() string {
	if t.Parser != "" {
		return t.Parser
	}
	return "generic"
}

// ResolveConfigPath returns the tool's config file path resolved against
// the project directory. The path is echoed back on results as an opaque
// string; whether the file exists is the tool's own business.
func (t *Tool) ResolveConfigPath(projectDir string) string {
	if t.Config == "" {
		return ""
	}
	if filepath.IsAbs(t.Config) {
		return filepath.Clean(t.Config)
	}
	return filepath.Join(projectDir, t.Config)
}

// ToolByName returns the tool with the given name, or nil.
func (c *Config) ToolByName(name string) *Tool {
	for i := range c.Tools {
		if c.Tools[i].Name == name {
			return &c.Tools[i]
		}
	}
	return nil
}

// Loader handles loading configuration from the file system.
type Loader struct {
	fs     FileSystem
	getenv func(string) string
}

// NewLoader creates a new Loader with the given file system.
// Uses os.Getenv for environment variable lookups by default.
func NewLoader(fs FileSystem) *Loader {
	return &Loader{fs: fs, getenv: os.Getenv}
}

// NewLoaderWithEnv creates a Loader with a custom getenv function for testability.
func NewLoaderWithEnv(fs FileSystem, getenv func(string) string) *Loader {
	return &Loader{fs: fs, getenv: getenv}
}

// Load reads and parses a tsgate.yaml configuration file from the given path.
// Returns ErrConfigNotFound if the file does not exist.
func (l *Loader) Load(ctx context.Context, path string) (*Config, error) {
	logger.FromContext(ctx).Debug("loading config file", "path", path)
	path = filepath.Clean(path)

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if l.fs.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing tsgate.yaml: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Load reads and parses a tsgate.yaml configuration file from the given path
// using the real file system.
// Returns ErrConfigNotFound if the file does not exist.
func Load(ctx context.Context, path string) (*Config, error) {
	return NewLoader(&RealFileSystem{}).Load(ctx, path)
}

// applyDefaults applies values from the defaults section to tools missing
// optional fields.
func applyDefaults(cfg *Config) {
	for i := range cfg.Tools {
		t := &cfg.Tools[i]

		if t.Timeout == 0 && cfg.Defaults.Timeout > 0 {
			t.Timeout = cfg.Defaults.Timeout
		}
		if t.Container == "" && cfg.Defaults.Container != "" {
			t.Container = cfg.Defaults.Container
		}
	}
}

// validate checks that all tools have required fields.
// Returns a joined error if multiple tools have issues, so users can fix
// all at once.
func validate(cfg *Config) error {
	var errs []error
	seen := make(map[string]bool, len(cfg.Tools))

	for _, t := range cfg.Tools {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("tool entry is missing required field 'name'"))
			continue
		}
		if seen[t.Name] {
			errs = append(errs, fmt.Errorf("tool %q: duplicate name", t.Name))
		}
		seen[t.Name] = true

		if t.Command == "" {
			errs = append(errs, fmt.Errorf("tool %q: missing required field 'command'", t.Name))
		}
		if t.Parser != "" && !knownParsers[t.Parser] {
			errs = append(errs, fmt.Errorf("tool %q: unknown parser %q (valid: tsc, lint-json, bun-test, generic)", t.Name, t.Parser))
		}
	}

	return errors.Join(errs...)
}
