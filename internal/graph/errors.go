package graph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCycle            = errors.New("circular dependency detected")
	ErrDuplicatePackage = errors.New("duplicate package name")
)

// CycleError reports the package whose re-entry closed a cycle.
// Path lists the cycle starting and ending at Package.
type CycleError struct {
	Package string
	Path    []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s: %s", ErrCycle, e.Package)
	}
	return fmt.Sprintf("%s: %s (%s)", ErrCycle, e.Package, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

// DuplicateError reports two package directories declaring the same name.
type DuplicateError struct {
	Package string
	First   string
	Second  string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s: %q declared by %s and %s", ErrDuplicatePackage, e.Package, e.First, e.Second)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicatePackage }
