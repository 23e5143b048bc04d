package main

import (
	"errors"
	"fmt"

	"github.com/arvasit/wsrun/internal/runner"
)

// errUsage marks missing or malformed command-line arguments.
var errUsage = errors.New("usage")

func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

func isInterrupted(err error) bool {
	return errors.Is(err, runner.ErrInterrupted)
}

// exitCode maps a command error to the process exit status. Interruption
// exits with 130, the shell convention for SIGINT; every other failure is 1.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case isInterrupted(err):
		return 130
	default:
		return 1
	}
}
