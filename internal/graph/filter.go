package graph

import (
	"github.com/arvasit/wsrun/internal/workspace"
)

// Filter returns the packages of sorted that belong to cat, keeping their
// relative order. CategoryAll keeps everything.
//
// Sorting happens before filtering so that a dependency living in another
// category still shapes the order of the packages that remain.
func Filter(sorted []workspace.Package, cat workspace.Category) []workspace.Package {
	out := make([]workspace.Package, 0, len(sorted))
	for _, p := range sorted {
		if cat == workspace.CategoryAll || p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}
