package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arvasit/wsrun/internal/ui"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !isInterrupted(err) {
		fmt.Fprintln(os.Stderr, ui.NewStyler(os.Stderr).Error("Error: "+err.Error()))
	}
	stop()
	os.Exit(exitCode(err))
}
