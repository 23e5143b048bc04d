package runner

import (
	"errors"
	"fmt"
)

var (
	ErrSpawn       = errors.New("failed to start task")
	ErrTaskFailed  = errors.New("task failed")
	ErrInterrupted = errors.New("interrupted")
)

// SpawnError reports a task process that could not be started.
type SpawnError struct {
	Package string
	Task    string
	Err     error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("%s: %q in %s: %v", ErrSpawn, e.Task, e.Package, e.Err)
}

func (e *SpawnError) Unwrap() []error { return []error{ErrSpawn, e.Err} }

// TaskError reports a task process that exited unsuccessfully.
// ExitCode is -1 when the process did not exit normally.
type TaskError struct {
	Package  string
	Task     string
	ExitCode int
	Err      error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s: %q in %s (exit code %d)", ErrTaskFailed, e.Task, e.Package, e.ExitCode)
}

func (e *TaskError) Unwrap() []error { return []error{ErrTaskFailed, e.Err} }

// Phase names a step of one orchestration run that can fail. Filtering and
// dependency extraction cannot fail and have no phase of their own.
type Phase string

const (
	PhaseDiscovering Phase = "discovering"
	PhaseSorting     Phase = "sorting"
	PhaseExecuting   Phase = "executing"
)

// PhaseError records the phase in which a run failed.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

// InPhase wraps err with the phase it happened in. A nil err stays nil.
func InPhase(p Phase, err error) error {
	if err == nil {
		return nil
	}
	return &PhaseError{Phase: p, Err: err}
}
