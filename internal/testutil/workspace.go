package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// Pkg describes a package fixture written by WritePackage.
type Pkg struct {
	Category string
	Dir      string
	Name     string
	Deps     []string
	DevDeps  []string
	PeerDeps []string
	Scripts  map[string]string
}

// WritePackage creates <root>/<category>/<dir>/package.json for the fixture.
// Dependencies are written in the order given.
func WritePackage(t *testing.T, root string, p Pkg) string {
	t.Helper()
	dir := filepath.Join(root, p.Category, p.Dir)
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // test dir
		t.Fatal(err)
	}

	doc := map[string]any{"name": p.Name, "version": "0.0.0"}
	if len(p.Scripts) > 0 {
		doc["scripts"] = p.Scripts
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	data = appendDeps(t, data, "dependencies", p.Deps)
	data = appendDeps(t, data, "devDependencies", p.DevDeps)
	data = appendDeps(t, data, "peerDependencies", p.PeerDeps)

	WriteFile(t, filepath.Join(dir, "package.json"), string(data))
	return dir
}

// appendDeps splices an ordered dependency object into a JSON document;
// encoding a map would sort the keys.
func appendDeps(t *testing.T, doc []byte, key string, names []string) []byte {
	t.Helper()
	if len(names) == 0 {
		return doc
	}
	obj := []byte("{")
	for i, n := range names {
		if i > 0 {
			obj = append(obj, ',')
		}
		k, err := json.Marshal(n)
		if err != nil {
			t.Fatal(err)
		}
		obj = append(obj, k...)
		obj = append(obj, []byte(`:"workspace:*"`)...)
	}
	obj = append(obj, '}')

	k, _ := json.Marshal(key)
	out := append([]byte(nil), doc[:len(doc)-1]...)
	out = append(out, ',')
	out = append(out, k...)
	out = append(out, ':')
	out = append(out, obj...)
	out = append(out, '}')
	return out
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // test dir
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}

// Scripts returns a scripts map declaring each named task.
func Scripts(tasks ...string) map[string]string {
	m := make(map[string]string, len(tasks))
	for _, task := range tasks {
		m[task] = "echo " + task
	}
	return m
}
