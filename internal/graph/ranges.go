package graph

import (
	"fmt"
	"strings"

	mm "github.com/Masterminds/semver/v3"

	"github.com/arvasit/wsrun/internal/workspace"
)

// Mismatch is an internal dependency whose declared range does not accept
// the version of the workspace package it resolves to.
type Mismatch struct {
	Package    string
	Dependency string
	Range      string
	Version    string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s requires %s@%s but the workspace has %s", m.Package, m.Dependency, m.Range, m.Version)
}

// CheckRanges compares every internal dependency range with the version of
// the package it names. The "workspace:" protocol prefix is stripped; bare
// "*", "^" and "~" ranges accept any version. Ranges or versions that are not
// semantic versions (file:, link:, git URLs), missing versions and
// dependencies absent from the workspace are not checked.
func CheckRanges(pkgs []workspace.Package) []Mismatch {
	versions := make(map[string]string, len(pkgs))
	for _, p := range pkgs {
		versions[p.PackageName] = p.Version
	}

	var out []Mismatch
	for _, p := range pkgs {
		for _, dep := range p.Dependencies {
			raw := p.Ranges[dep]
			have, ok := versions[dep]
			if !ok || have == "" {
				continue
			}
			c, ok := constraint(raw)
			if !ok {
				continue
			}
			v, err := mm.NewVersion(have)
			if err != nil {
				continue
			}
			if !c.Check(v) {
				out = append(out, Mismatch{Package: p.PackageName, Dependency: dep, Range: raw, Version: have})
			}
		}
	}
	return out
}

func constraint(raw string) (*mm.Constraints, bool) {
	r := strings.TrimSpace(strings.TrimPrefix(raw, "workspace:"))
	switch r {
	case "", "*", "^", "~":
		return nil, false
	}
	c, err := mm.NewConstraint(r)
	if err != nil {
		return nil, false
	}
	return c, true
}
