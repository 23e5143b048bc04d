package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "wsrun",
		Short:         "Run package scripts across the workspace in dependency order",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().String("root", ".", "Workspace root directory")
	cmd.PersistentFlags().String("config", "", "Config file (default <root>/wsrun.yaml)")

	cmd.AddCommand(
		newRunCmd(),
		newListCmd(),
		newDoctorCmd(),
	)

	return cmd
}
