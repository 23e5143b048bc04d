package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/arvasit/wsrun/internal/runner"
	"github.com/arvasit/wsrun/internal/ui"
	"github.com/arvasit/wsrun/internal/workspace"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <category> <task>",
		Short: "Run a package script across a category in dependency order",
		Long: `Run a package.json script in every package of a category, dependencies first.

Categories: ` + strings.Join(workspace.Selectors(), ", ") + `

Without --parallel, packages run one at a time and the first failure stops the
run. With --parallel, each task is started and left running, with a pause
(--settle) before the next start; wsrun then waits until interrupted.`,
		Example: `  wsrun run all build
  wsrun run libs start --parallel
  wsrun run apps dev --parallel --settle 3s`,
		Args: cobra.MaximumNArgs(2),
		RunE: runRun,
	}
	cmd.Flags().Bool("parallel", false, "Start tasks in dependency order and keep them running")
	cmd.Flags().Duration("settle", 0, "Pause after each parallel start (default from config, 1s)")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	parallel, _ := cmd.Flags().GetBool("parallel")

	a := runArgs{parallel: parallel}
	if len(args) > 0 {
		a.category = args[0]
	}
	if len(args) > 1 {
		a.task = args[1]
	}
	if a.category == "" || a.task == "" {
		if !stdinIsTerminal() {
			return usageErrorf("wsrun run <category> <task> [--parallel]")
		}
		var err error
		a, err = promptRunArgs(a, !cmd.Flags().Changed("parallel"))
		if err != nil {
			return err
		}
	}

	cat, err := workspace.ParseCategory(a.category)
	if err != nil {
		return err
	}

	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("settle") {
		settle, _ := cmd.Flags().GetDuration("settle")
		if settle < 0 {
			return usageErrorf("--settle must not be negative (got %s)", settle)
		}
		ws.Config.Settle = settle
	}

	out := cmd.OutOrStdout()
	style := ui.NewStyler(out)
	mode := ""
	if a.parallel {
		mode = " (parallel)"
	}
	_, _ = fmt.Fprintln(out, style.Heading(fmt.Sprintf("Running %q in %s packages%s", a.task, cat, mode)))

	plan, err := buildPlan(ws, cat, a.task, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	if len(plan.Eligible()) == 0 {
		_, _ = fmt.Fprintf(out, "No package with a %q script found in %s\n", a.task, scopeLabel(cat))
		return nil
	}

	engine := &runner.Engine{
		Starter: &runner.ExecStarter{
			Root:   ws.Root,
			Config: ws.Config,
			Stdin:  cmd.InOrStdin(),
			Stdout: out,
			Stderr: cmd.ErrOrStderr(),
		},
		Settle: ws.Config.Settle,
		Out:    out,
	}

	if a.parallel {
		return runner.InPhase(runner.PhaseExecuting, engine.Parallel(cmd.Context(), plan))
	}

	sum, err := engine.Sequential(cmd.Context(), plan)
	printSummary(out, sum, err)
	return runner.InPhase(runner.PhaseExecuting, err)
}

func printSummary(w io.Writer, sum runner.Summary, err error) {
	style := ui.NewStyler(w)
	title := style.OK("Run completed:")
	if err != nil {
		title = style.Error("Run stopped:")
	}
	_, _ = fmt.Fprintf(w, "\n%s\n", title)
	_, _ = fmt.Fprintf(w, "  Total packages: %d\n", sum.Discovered)
	_, _ = fmt.Fprintf(w, "  In scope:       %d\n", sum.Selected)
	_, _ = fmt.Fprintf(w, "  Executed:       %d\n", sum.Executed)
	_, _ = fmt.Fprintf(w, "  Without task:   %d\n", sum.Skipped)
}

func scopeLabel(cat workspace.Category) string {
	if cat == workspace.CategoryAll {
		return "any category"
	}
	return string(cat) + "/"
}
