package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrInvalid is wrapped by every ParseError.
var ErrInvalid = errors.New("invalid manifest")

// ParseError reports a package.json that could not be read or validated.
// Discovery treats it as a per-package warning, never as a fatal error.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s in %s: %v", FileName, e.Path, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrInvalid, e.Err} }

// Load reads and validates a package.json file.
// Every failure is returned as a *ParseError carrying the path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is a package manifest inside the workspace
	if err != nil {
		return nil, &ParseError{Path: path, Err: fmt.Errorf("reading manifest: %w", err)}
	}
	m, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return m, nil
}

// Parse parses and validates package.json content.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest JSON: %w", err)
	}
	if err := validate(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

func validate(m *Manifest) error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("manifest: name is required")
	}
	for _, deps := range m.collections() {
		for i, d := range deps {
			if d.Name == "" {
				return fmt.Errorf("manifest: dependency #%d has an empty name", i)
			}
		}
	}
	return nil
}

// InternalDependencies returns the names of every dependency, across the
// runtime, dev and peer collections, that carries the internal prefix.
// Names are deduplicated and kept in first-seen order.
func InternalDependencies(m *Manifest, prefix string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, deps := range m.collections() {
		for _, d := range deps {
			if !strings.HasPrefix(d.Name, prefix) || seen[d.Name] {
				continue
			}
			seen[d.Name] = true
			out = append(out, d.Name)
		}
	}
	return out
}

// InternalRanges maps every internal dependency name to the version range it
// was first declared with, using the same collection order as
// InternalDependencies.
func InternalRanges(m *Manifest, prefix string) map[string]string {
	out := make(map[string]string)
	for _, deps := range m.collections() {
		for _, d := range deps {
			if _, ok := out[d.Name]; ok || !strings.HasPrefix(d.Name, prefix) {
				continue
			}
			out[d.Name] = d.Range
		}
	}
	return out
}
