// Package config loads the optional wsrun.yaml file that tunes how packages
// are classified and how tasks are launched.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up at the workspace root.
const FileName = "wsrun.yaml"

const (
	// DefaultScope is the naming prefix that marks a dependency as internal.
	DefaultScope = "@arvasit/"

	// DefaultSettle is the pause between parallel starts. It approximates
	// "the previous package is ready"; nothing checks readiness.
	DefaultSettle = time.Second
)

// Placeholders substituted in runner arguments.
const (
	PlaceholderPackage = "{package}"
	PlaceholderTask    = "{task}"
	PlaceholderPath    = "{path}"
)

// DefaultRunner runs a script in one package through pnpm's filter.
var DefaultRunner = []string{"pnpm", "--filter", PlaceholderPackage, PlaceholderTask}

// Config is the parsed form of wsrun.yaml.
type Config struct {
	Version int           `yaml:"version"`
	Scope   string        `yaml:"scope,omitempty"`
	Settle  time.Duration `yaml:"settle,omitempty"`
	Runner  []string      `yaml:"runner,omitempty"`
}

// Default returns the configuration used when no wsrun.yaml exists.
func Default() *Config {
	return &Config{
		Version: 1,
		Scope:   DefaultScope,
		Settle:  DefaultSettle,
		Runner:  append([]string(nil), DefaultRunner...),
	}
}

// Load reads the config file at path. A missing file yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the workspace config file
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// Parse parses wsrun.yaml content, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.Runner = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if len(cfg.Runner) == 0 {
		cfg.Runner = append([]string(nil), DefaultRunner...)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", cfg.Version)
	}
	if cfg.Settle < 0 {
		return fmt.Errorf("config: settle must not be negative: %s", cfg.Settle)
	}
	if strings.TrimSpace(cfg.Scope) == "" {
		return fmt.Errorf("config: scope must not be blank")
	}
	if strings.TrimSpace(cfg.Runner[0]) == "" {
		return fmt.Errorf("config: runner executable is required")
	}
	for _, arg := range cfg.Runner {
		if strings.Contains(arg, PlaceholderTask) {
			return nil
		}
	}
	return fmt.Errorf("config: runner must contain %s: %v", PlaceholderTask, cfg.Runner)
}

// Command expands the runner template for one package and task.
func (c *Config) Command(pkg, task, path string) []string {
	r := strings.NewReplacer(
		PlaceholderPackage, pkg,
		PlaceholderTask, task,
		PlaceholderPath, path,
	)
	out := make([]string, len(c.Runner))
	for i, arg := range c.Runner {
		out[i] = r.Replace(arg)
	}
	return out
}
