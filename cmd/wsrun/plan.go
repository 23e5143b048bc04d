package main

import (
	"io"

	"github.com/arvasit/wsrun/internal/graph"
	"github.com/arvasit/wsrun/internal/runner"
	"github.com/arvasit/wsrun/internal/ui"
	"github.com/arvasit/wsrun/internal/workspace"
	"github.com/spf13/cobra"
)

// loadWorkspace resolves --root and --config.
func loadWorkspace(cmd *cobra.Command) (*workspace.Context, error) {
	root, _ := cmd.Flags().GetString("root")
	configPath, _ := cmd.Flags().GetString("config")
	return workspace.Load(root, configPath)
}

// buildPlan discovers every category, sorts the whole workspace and narrows
// the result to cat. Manifest warnings are printed to warn and never fail the
// plan. The graph is rebuilt on every call.
func buildPlan(ws *workspace.Context, cat workspace.Category, task string, warn io.Writer) (runner.Plan, error) {
	d, err := ws.DiscoverAll(task)
	if err != nil {
		return runner.Plan{}, runner.InPhase(runner.PhaseDiscovering, err)
	}
	printWarnings(warn, d.Warnings)

	sorted, err := graph.Sort(d.Packages)
	if err != nil {
		return runner.Plan{}, runner.InPhase(runner.PhaseSorting, err)
	}

	return runner.Plan{
		Task:       task,
		Category:   cat,
		Discovered: len(d.Packages),
		Packages:   graph.Filter(sorted, cat),
	}, nil
}

func printWarnings(w io.Writer, warnings []error) {
	if len(warnings) == 0 {
		return
	}
	p := ui.NewProgress(w, 0)
	for _, err := range warnings {
		p.Warn("%v (skipped)", err)
	}
}
