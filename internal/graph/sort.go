// Package graph orders workspace packages so that internal dependencies come
// before their dependents, and narrows the ordered list to a category.
package graph

import (
	"github.com/arvasit/wsrun/internal/workspace"
)

type mark uint8

const (
	unvisited mark = iota
	inProgress
	done
)

type frame struct {
	node int
	next int // index into the node's Dependencies
}

// Sort returns pkgs in dependency order: for every package P and every
// discovered Q in P.Dependencies, Q precedes P.
//
// Traversal is depth-first with an explicit stack. Roots are visited in the
// order given and dependencies in declaration order, so the result is
// deterministic for a fixed discovery order. Dependencies naming packages
// that were not discovered are ignored. Sort fails with a *CycleError on the
// first package re-entered while still in progress, and with a
// *DuplicateError if two packages share a name.
func Sort(pkgs []workspace.Package) ([]workspace.Package, error) {
	index := make(map[string]int, len(pkgs))
	for i, p := range pkgs {
		if j, ok := index[p.PackageName]; ok {
			return nil, &DuplicateError{Package: p.PackageName, First: pkgs[j].Path, Second: p.Path}
		}
		index[p.PackageName] = i
	}

	marks := make([]mark, len(pkgs))
	sorted := make([]workspace.Package, 0, len(pkgs))
	var stack []frame

	for root := range pkgs {
		if marks[root] != unvisited {
			continue
		}
		marks[root] = inProgress
		stack = append(stack[:0], frame{node: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := pkgs[top.node].Dependencies

			if top.next == len(deps) {
				marks[top.node] = done
				sorted = append(sorted, pkgs[top.node])
				stack = stack[:len(stack)-1]
				continue
			}

			name := deps[top.next]
			top.next++
			dep, ok := index[name]
			if !ok {
				continue
			}
			switch marks[dep] {
			case done:
				continue
			case inProgress:
				return nil, cycleError(pkgs, stack, dep)
			}
			marks[dep] = inProgress
			stack = append(stack, frame{node: dep})
		}
	}

	return sorted, nil
}

// cycleError builds the cycle path from the stack frame of the re-entered
// node down to the top of the stack.
func cycleError(pkgs []workspace.Package, stack []frame, reentered int) error {
	start := 0
	for i, f := range stack {
		if f.node == reentered {
			start = i
			break
		}
	}
	path := make([]string, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		path = append(path, pkgs[f.node].PackageName)
	}
	name := pkgs[reentered].PackageName
	path = append(path, name)
	return &CycleError{Package: name, Path: path}
}
