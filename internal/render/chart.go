// Package render builds the HTML chart cmd/view's chart subcommand writes,
// isolating the go-echarts wiring from command-line plumbing.
package render

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LeafFillChart builds a single-series bar chart of decoration counts per
// leaf, in depth-first tree order, trimmed from a full multi-page dashboard
// down to the one series this repo needs.
func LeafFillChart(leafLabels []string, leafSizes []int) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Decoration set leaf fill", Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "leaf"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "decorations"}),
	)

	bar.SetXAxis(leafLabels)

	data := make([]opts.BarData, len(leafSizes))
	for i, n := range leafSizes {
		data[i] = opts.BarData{Value: n}
	}

	bar.AddSeries("decorations", data)

	return bar
}
