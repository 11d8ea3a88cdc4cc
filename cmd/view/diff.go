package main

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/majeekg/view/pkg/scenario"
	"github.com/majeekg/view/pkg/setcompare"
	"github.com/majeekg/view/pkg/textdiff"
)

func diffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <old.json> <new.json>",
		Short: "Diff two decoration scenarios and print the dirty content/height ranges",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDiff(args[0], args[1])
		},
	}

	return cmd
}

func runDiff(oldPath, newPath string) error {
	oldDoc, _, err := scenario.Load(oldPath)
	if err != nil {
		return err
	}

	newDoc, _, err := scenario.Load(newPath)
	if err != nil {
		return err
	}

	oldSet, err := oldDoc.Build()
	if err != nil {
		return fmt.Errorf("build %s: %w", oldPath, err)
	}

	newSet, err := newDoc.Build()
	if err != nil {
		return fmt.Errorf("build %s: %w", newPath, err)
	}

	changes := textdiff.Compute(oldDoc.OldText, newDoc.NewText)

	result := setcompare.Compare(oldSet, newSet, changes)

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	tbl.AppendHeader(table.Row{"kind", "fromA", "toA", "fromB", "toB"})

	for _, r := range result.Content {
		tbl.AppendRow(table.Row{"content", r.FromA, r.ToA, r.FromB, r.ToB})
	}

	for _, r := range result.Height {
		tbl.AppendRow(table.Row{"height", r.FromA, r.ToA, r.FromB, r.ToB})
	}

	tbl.AppendFooter(table.Row{
		"total", "", "", "",
		fmt.Sprintf("%d content, %d height", len(result.Content), len(result.Height)),
	})

	fmt.Fprintln(os.Stdout, tbl.Render())

	return nil
}
