// Package runner executes a task across an ordered list of packages, either
// one at a time with stop-on-failure, or as long-running processes started
// in order with a settle pause between starts.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/arvasit/wsrun/internal/ui"
	"github.com/arvasit/wsrun/internal/workspace"
)

// Plan is the ordered work of one invocation.
type Plan struct {
	Task     string
	Category workspace.Category
	// Discovered counts every package found, across all categories.
	Discovered int
	// Packages is sorted and filtered to Category.
	Packages []workspace.Package
}

// Eligible returns the packages that declare the task, in order.
func (p Plan) Eligible() []workspace.Package {
	out := make([]workspace.Package, 0, len(p.Packages))
	for _, pkg := range p.Packages {
		if pkg.HasTask {
			out = append(out, pkg)
		}
	}
	return out
}

// Summary is the outcome of a sequential run.
type Summary struct {
	Discovered int
	Selected   int
	Executed   int
	Skipped    int
}

// Engine runs a Plan through a Starter.
type Engine struct {
	Starter Starter
	// Settle is the pause after each parallel start. It stands in for a
	// readiness check that does not exist: a dependency slower to come up
	// than Settle is not waited for.
	Settle time.Duration
	Out    io.Writer
}

func (e *Engine) out() io.Writer {
	if e.Out == nil {
		return os.Stdout
	}
	return e.Out
}

// Sequential runs the task in every eligible package in order, waiting for
// each to exit. The first start failure or non-zero exit stops the run;
// the returned Summary counts what ran before it.
func (e *Engine) Sequential(ctx context.Context, plan Plan) (Summary, error) {
	eligible := plan.Eligible()
	sum := Summary{
		Discovered: plan.Discovered,
		Selected:   len(plan.Packages),
		Skipped:    len(plan.Packages) - len(eligible),
	}
	progress := ui.NewProgress(e.out(), len(eligible))

	for _, pkg := range eligible {
		if ctx.Err() != nil {
			return sum, ErrInterrupted
		}
		progress.Log("Running %q in %s ...", plan.Task, pkg.PackageName)

		proc, err := e.Starter.Start(ctx, pkg, plan.Task)
		if err != nil {
			progress.Fail("%s: could not start %q", pkg.PackageName, plan.Task)
			return sum, &SpawnError{Package: pkg.PackageName, Task: plan.Task, Err: err}
		}
		if err := proc.Wait(); err != nil {
			// A terminal interrupt reaches the child and the parent together.
			if ctx.Err() != nil {
				return sum, ErrInterrupted
			}
			progress.Fail("%s: %s failed", pkg.PackageName, plan.Task)
			return sum, &TaskError{Package: pkg.PackageName, Task: plan.Task, ExitCode: exitCode(err), Err: err}
		}
		progress.Done(fmt.Sprintf("%s: %s done", pkg.PackageName, plan.Task))
		sum.Executed = progress.Completed()
	}
	return sum, nil
}

// Parallel starts the task in every eligible package in order, pausing for
// Settle after each start. Children are never monitored: their exit status is
// collected only so they do not linger as zombies. Once everything is started,
// Parallel blocks until ctx is cancelled and returns ErrInterrupted. A start
// failure stops the run and nothing further is started.
func (e *Engine) Parallel(ctx context.Context, plan Plan) error {
	eligible := plan.Eligible()
	progress := ui.NewProgress(e.out(), len(eligible))

	for _, pkg := range eligible {
		if ctx.Err() != nil {
			return ErrInterrupted
		}
		progress.Log("Starting %q in %s ...", plan.Task, pkg.PackageName)

		proc, err := e.Starter.Start(ctx, pkg, plan.Task)
		if err != nil {
			progress.Fail("%s: could not start %q", pkg.PackageName, plan.Task)
			return &SpawnError{Package: pkg.PackageName, Task: plan.Task, Err: err}
		}
		go func() { _ = proc.Wait() }()

		if err := settle(ctx, e.Settle); err != nil {
			return err
		}
		progress.Done(fmt.Sprintf("%s started", pkg.PackageName))
	}

	progress.Log("Started %d of %d packages in scope (%d discovered).", progress.Completed(), len(plan.Packages), plan.Discovered)
	progress.Log("All tasks running. Press Ctrl+C to stop all processes.")
	return BlockUntilInterrupted(ctx)
}

// BlockUntilInterrupted blocks until ctx is cancelled, normally by a signal
// delivered to the whole invocation, and returns ErrInterrupted. It is how
// parallel mode keeps the parent alive for its children; it never completes
// on its own.
func BlockUntilInterrupted(ctx context.Context) error {
	<-ctx.Done()
	return ErrInterrupted
}

func settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		if ctx.Err() != nil {
			return ErrInterrupted
		}
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ErrInterrupted
	}
}
