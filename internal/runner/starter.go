package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"github.com/arvasit/wsrun/internal/config"
	"github.com/arvasit/wsrun/internal/workspace"
)

// Process is a started task.
type Process interface {
	// Wait blocks until the process exits and reports a non-zero exit as an error.
	Wait() error
}

// Starter launches the task of one package.
type Starter interface {
	Start(ctx context.Context, pkg workspace.Package, task string) (Process, error)
}

// ExecStarter runs tasks as child processes built from the configured runner
// template, from the workspace root, with the standard streams inherited.
type ExecStarter struct {
	Root   string
	Config *config.Config

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Start launches the task without waiting for it.
//
// The context is not bound to the child: children share the process group and
// receive terminal interrupts directly, so nothing here kills them.
func (s *ExecStarter) Start(ctx context.Context, pkg workspace.Package, task string) (Process, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	argv := s.Config.Command(pkg.PackageName, task, pkg.Path)
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty runner command")
	}

	c := exec.Command(argv[0], argv[1:]...) //nolint:gosec // runner comes from the workspace config
	c.Dir = s.Root
	c.Stdin = s.Stdin
	c.Stdout = s.Stdout
	c.Stderr = s.Stderr
	if err := c.Start(); err != nil {
		return nil, err
	}
	return &execProcess{cmd: c}, nil
}

type execProcess struct {
	cmd *exec.Cmd
}

func (p *execProcess) Wait() error {
	return p.cmd.Wait()
}

// exitCode extracts a process exit code from a Wait error.
func exitCode(err error) int {
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}
