package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/arvasit/wsrun/internal/config"
)

// Context holds the resolved paths and loaded config for a workspace.
type Context struct {
	Root       string
	ConfigPath string
	Config     *config.Config
}

// Load resolves the workspace root and loads its config.
// An empty configPath means <root>/wsrun.yaml; a missing file yields defaults.
func Load(root, configPath string) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving workspace root: %w", err)
	}
	if configPath == "" {
		configPath = filepath.Join(root, config.FileName)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	return &Context{
		Root:       root,
		ConfigPath: configPath,
		Config:     cfg,
	}, nil
}

// CategoryDir returns the absolute directory holding a category's packages.
func (c *Context) CategoryDir(cat Category) string {
	return filepath.Join(c.Root, string(cat))
}

// Category is one of the fixed workspace groupings.
type Category string

const (
	CategoryLibs     Category = "libs"
	CategoryDomains  Category = "domains"
	CategoryPackages Category = "packages"
	CategoryApps     Category = "apps"

	// CategoryAll selects every category. It is never attached to a Package.
	CategoryAll Category = "all"
)

// Categories lists the real categories in discovery order.
var Categories = []Category{CategoryLibs, CategoryDomains, CategoryPackages, CategoryApps}

// ErrUnknownCategory is returned by ParseCategory for names outside the fixed set.
var ErrUnknownCategory = errors.New("unknown category")

// ParseCategory parses a category selector, accepting "all".
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryAll, CategoryLibs, CategoryDomains, CategoryPackages, CategoryApps:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q (must be one of %s)", ErrUnknownCategory, s, strings.Join(Selectors(), ", "))
	}
}

// Selectors returns every accepted category selector, "all" first.
func Selectors() []string {
	out := []string{string(CategoryAll)}
	for _, c := range Categories {
		out = append(out, string(c))
	}
	return out
}
