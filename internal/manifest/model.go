package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FileName is the manifest file looked up in every package directory.
const FileName = "package.json"

// Manifest is the subset of package.json that wsrun consumes.
type Manifest struct {
	Name             string            `json:"name"`
	Version          string            `json:"version,omitempty"`
	Dependencies     Deps              `json:"dependencies,omitempty"`
	DevDependencies  Deps              `json:"devDependencies,omitempty"`
	PeerDependencies Deps              `json:"peerDependencies,omitempty"`
	Scripts          map[string]string `json:"scripts,omitempty"`
}

// Dep is a single dependency entry: a package name and its version range.
type Dep struct {
	Name  string
	Range string
}

// Deps is a dependency collection that keeps entries in file order.
// A plain map would lose the order the sorter relies on for determinism.
type Deps []Dep

// UnmarshalJSON decodes a JSON object of name/range pairs.
func (d *Deps) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dependencies must be an object, got %v", tok)
	}

	var out Deps
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, _ := tok.(string)
		var rng string
		if err := dec.Decode(&rng); err != nil {
			return fmt.Errorf("dependency %q: %w", name, err)
		}
		out = append(out, Dep{Name: name, Range: rng})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*d = out
	return nil
}

// HasScript reports whether the manifest declares the named script.
func (m *Manifest) HasScript(name string) bool {
	_, ok := m.Scripts[name]
	return ok
}

// collections returns the dependency kinds in the order they are scanned.
func (m *Manifest) collections() []Deps {
	return []Deps{m.Dependencies, m.DevDependencies, m.PeerDependencies}
}
