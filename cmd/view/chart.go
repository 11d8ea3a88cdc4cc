package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/majeekg/view/internal/render"
	"github.com/majeekg/view/pkg/decorset"
	"github.com/majeekg/view/pkg/scenario"
)

func chartCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "chart <scenario.json>",
		Short: "Render an HTML bar chart of per-leaf decoration counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runChart(args[0], out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "chart.html", "output HTML file path")

	return cmd
}

func runChart(path, out string) error {
	doc, _, err := scenario.Load(path)
	if err != nil {
		return err
	}

	set, err := doc.Build()
	if err != nil {
		return fmt.Errorf("build decoration set: %w", err)
	}

	var labels []string

	var sizes []int

	collectLeafSizes(set, &labels, &sizes)

	bar := render.LeafFillChart(labels, sizes)

	f, err := os.Create(out) //nolint:gosec // out is an operator-supplied CLI flag, not untrusted input
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	fmt.Fprintf(os.Stdout, "wrote %s\n", out)

	return nil
}

func collectLeafSizes(s *decorset.Set, labels *[]string, sizes *[]int) {
	if s.IsLeaf() {
		*labels = append(*labels, strconv.Itoa(len(*labels)))
		*sizes = append(*sizes, len(s.Local()))

		return
	}

	for _, c := range s.Children() {
		collectLeafSizes(c, labels, sizes)
	}
}
