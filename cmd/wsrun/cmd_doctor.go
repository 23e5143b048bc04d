package main

import (
	"fmt"
	"os/exec"

	"github.com/arvasit/wsrun/internal/graph"
	"github.com/arvasit/wsrun/internal/ui"
	"github.com/arvasit/wsrun/internal/workspace"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the runner and the workspace dependency graph",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	style := ui.NewStyler(out)
	ok := true

	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Workspace: %s\n", ws.Root)

	runnerExe := ws.Config.Runner[0]
	_, _ = fmt.Fprintf(out, "Checking runner %q... ", runnerExe)
	if path, err := exec.LookPath(runnerExe); err != nil {
		_, _ = fmt.Fprintln(out, style.Error("NOT FOUND"))
		ok = false
	} else {
		_, _ = fmt.Fprintf(out, "found at %s\n", path)
	}

	_, _ = fmt.Fprint(out, "Checking packages... ")
	d, err := ws.DiscoverAll("")
	if err != nil {
		_, _ = fmt.Fprintln(out, style.Error("ERROR"))
		_, _ = fmt.Fprintf(out, "  %v\n", err)
		return fmt.Errorf("doctor checks failed")
	}
	_, _ = fmt.Fprintf(out, "%d found\n", len(d.Packages))
	for _, w := range d.Warnings {
		_, _ = fmt.Fprintf(out, "  %s\n", style.Warn(w.Error()))
	}
	for _, cat := range workspace.Categories {
		n := 0
		for _, p := range d.Packages {
			if p.Category == cat {
				n++
			}
		}
		_, _ = fmt.Fprintf(out, "  %-9s %d\n", cat, n)
	}

	_, _ = fmt.Fprint(out, "Checking dependency graph... ")
	if _, err := graph.Sort(d.Packages); err != nil {
		_, _ = fmt.Fprintln(out, style.Error("FAILED"))
		_, _ = fmt.Fprintf(out, "  %v\n", err)
		ok = false
	} else {
		_, _ = fmt.Fprintln(out, style.OK("OK"))
	}

	_, _ = fmt.Fprint(out, "Checking internal version ranges... ")
	if mismatches := graph.CheckRanges(d.Packages); len(mismatches) > 0 {
		_, _ = fmt.Fprintln(out, style.Error("FAILED"))
		for _, m := range mismatches {
			_, _ = fmt.Fprintf(out, "  %s\n", m)
		}
		ok = false
	} else {
		_, _ = fmt.Fprintln(out, style.OK("OK"))
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}
