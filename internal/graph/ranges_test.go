package graph

import (
	"testing"

	"github.com/arvasit/wsrun/internal/workspace"
)

func versioned(name, version string, ranges map[string]string) workspace.Package {
	p := workspace.Package{PackageName: name, Version: version, Ranges: ranges}
	for dep := range ranges {
		p.Dependencies = append(p.Dependencies, dep)
	}
	return p
}

func TestCheckRanges(t *testing.T) {
	tests := []struct {
		name     string
		rng      string
		version  string
		mismatch bool
	}{
		{"workspace star", "workspace:*", "1.0.0", false},
		{"workspace caret", "workspace:^", "3.1.0", false},
		{"workspace exact ok", "workspace:^1.2.0", "1.9.0", false},
		{"workspace exact bad", "workspace:^1.2.0", "2.0.0", true},
		{"plain caret ok", "^1.2.0", "1.2.3", false},
		{"plain tilde bad", "~1.4", "1.5.0", true},
		{"file protocol", "file:../sdk", "1.0.0", false},
		{"no version", "^1.0.0", "", false},
		{"non-semver version", "^1.0.0", "latest", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkgs := []workspace.Package{
				versioned("@ws/sdk", tt.version, nil),
				versioned("@ws/web", "0.1.0", map[string]string{"@ws/sdk": tt.rng}),
			}
			got := CheckRanges(pkgs)
			if (len(got) == 1) != tt.mismatch || len(got) > 1 {
				t.Fatalf("CheckRanges = %v, want mismatch=%v", got, tt.mismatch)
			}
			if tt.mismatch && (got[0].Package != "@ws/web" || got[0].Dependency != "@ws/sdk") {
				t.Errorf("unexpected mismatch %+v", got[0])
			}
		})
	}
}

func TestCheckRanges_missingDependency(t *testing.T) {
	pkgs := []workspace.Package{versioned("@ws/web", "1.0.0", map[string]string{"@ws/gone": "^9.0.0"})}
	if got := CheckRanges(pkgs); len(got) != 0 {
		t.Errorf("dependencies outside the workspace are not checked, got %v", got)
	}
}
