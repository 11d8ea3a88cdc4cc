package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/majeekg/view/pkg/decorset"
	"github.com/majeekg/view/pkg/scenario"
)

func inspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <scenario.json>",
		Short: "Print shape statistics for a scenario's decoration set",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runInspect(args[0])
		},
	}

	return cmd
}

func runInspect(path string) error {
	doc, data, err := scenario.Load(path)
	if err != nil {
		return err
	}

	set, err := doc.Build()
	if err != nil {
		return fmt.Errorf("build decoration set: %w", err)
	}

	leafCount := countLeaves(set)

	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateHeader = false

	tbl.AppendHeader(table.Row{"metric", "value"})
	tbl.AppendRow(table.Row{"file size", humanize.Bytes(uint64(len(data)))}) //nolint:gosec // len() is never negative
	tbl.AppendRow(table.Row{"text length", set.Length()})
	tbl.AppendRow(table.Row{"decoration count", set.Size()})
	tbl.AppendRow(table.Row{"tree depth", set.Depth()})
	tbl.AppendRow(table.Row{"leaf count", leafCount})
	tbl.AppendRow(table.Row{"avg leaf fill", fmt.Sprintf("%.2f", decorset.AvgLeafFill(set))})
	tbl.AppendFooter(table.Row{"total decorations", len(doc.Decorations)})

	fmt.Fprintln(os.Stdout, tbl.Render())

	return nil
}

func countLeaves(s *decorset.Set) int {
	if s.IsLeaf() {
		return 1
	}

	count := 0
	for _, c := range s.Children() {
		count += countLeaves(c)
	}

	return count
}
