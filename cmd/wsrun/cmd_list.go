package main

import (
	"encoding/json"
	"fmt"

	"github.com/arvasit/wsrun/internal/ui"
	"github.com/arvasit/wsrun/internal/workspace"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [category]",
		Short: "List packages in the order run would use",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runList,
	}
	cmd.Flags().String("task", "", "Mark which packages declare this script")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type listEntry struct {
	Order int `json:"order"`
	workspace.Package
}

func runList(cmd *cobra.Command, args []string) error {
	task, _ := cmd.Flags().GetString("task")
	asJSON, _ := cmd.Flags().GetBool("json")

	cat := workspace.CategoryAll
	if len(args) == 1 {
		var err error
		cat, err = workspace.ParseCategory(args[0])
		if err != nil {
			return err
		}
	}

	ws, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}
	plan, err := buildPlan(ws, cat, task, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	entries := make([]listEntry, 0, len(plan.Packages))
	for i, p := range plan.Packages {
		entries = append(entries, listEntry{Order: i + 1, Package: p})
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	headers := []string{"ORDER", "PACKAGE", "CATEGORY", "PATH", "DEPENDS ON"}
	if task != "" {
		headers = append(headers, "HAS "+task)
	}
	tbl := ui.NewTable(out, headers...)
	for _, e := range entries {
		row := []any{e.Order, e.PackageName, e.Category, e.Path, e.Dependencies}
		if task != "" {
			row = append(row, e.HasTask)
		}
		tbl.Row(row...)
	}
	if err := tbl.Flush(); err != nil {
		return err
	}
	if tbl.Len() == 0 {
		_, _ = fmt.Fprintf(out, "No packages found in %s\n", scopeLabel(cat))
	}
	return nil
}
