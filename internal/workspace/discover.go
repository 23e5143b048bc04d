package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arvasit/wsrun/internal/manifest"
)

// Package describes one discovered workspace unit.
type Package struct {
	Name         string   `json:"name"`
	PackageName  string   `json:"packageName"`
	Version      string   `json:"version,omitempty"`
	Category     Category `json:"category"`
	Path         string   `json:"path"`
	Dependencies []string `json:"dependencies,omitempty"`
	HasTask      bool     `json:"hasTask"`

	// Ranges holds the declared version range of each internal dependency.
	Ranges map[string]string `json:"-"`
}

// Discovery is the result of scanning one or more categories.
type Discovery struct {
	Packages []Package
	// Warnings holds one *manifest.ParseError per skipped package directory.
	Warnings []error
}

// Discover scans the subdirectories of a category and builds a Package for
// each one holding a valid package.json. Directories without a manifest are
// skipped; invalid manifests are recorded as warnings. Only a failure to list
// the category directory itself is returned as an error.
func (c *Context) Discover(cat Category, task string) (Discovery, error) {
	var d Discovery
	if cat == CategoryAll {
		return d, fmt.Errorf("discover: %q is a selector, not a category", cat)
	}

	dir := c.CategoryDir(cat)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return d, nil
	}
	if err != nil {
		return d, fmt.Errorf("reading %s: %w", dir, err)
	}

	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		manifestPath := filepath.Join(dir, e.Name(), manifest.FileName)
		if _, err := os.Stat(manifestPath); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		m, err := manifest.Load(manifestPath)
		if err != nil {
			d.Warnings = append(d.Warnings, err)
			continue
		}
		d.Packages = append(d.Packages, Package{
			Name:         e.Name(),
			PackageName:  m.Name,
			Version:      m.Version,
			Category:     cat,
			Path:         filepath.ToSlash(filepath.Join(string(cat), e.Name())),
			Dependencies: manifest.InternalDependencies(m, c.Config.Scope),
			HasTask:      m.HasScript(task),
			Ranges:       manifest.InternalRanges(m, c.Config.Scope),
		})
	}
	return d, nil
}

// DiscoverAll discovers every category in order and concatenates the results.
func (c *Context) DiscoverAll(task string) (Discovery, error) {
	var all Discovery
	for _, cat := range Categories {
		d, err := c.Discover(cat, task)
		if err != nil {
			return all, err
		}
		all.Packages = append(all.Packages, d.Packages...)
		all.Warnings = append(all.Warnings, d.Warnings...)
	}
	return all, nil
}
