package ui

import (
	"fmt"
	"io"
	"text/tabwriter"

	"casebench/internal/benchmark"
)

// Status of a compared combination, judged on the normalized time.
const (
	StatusPass        = "PASS"
	StatusRegression  = "SLOWER"
	StatusImprovement = "FASTER"
)

// ComparisonStatus classifies a ratio change against threshold percent.
func ComparisonStatus(c benchmark.Comparison, threshold float64) string {
	switch {
	case c.RatioDiff > threshold:
		return StatusRegression
	case c.RatioDiff < -threshold:
		return StatusImprovement
	default:
		return StatusPass
	}
}

// WriteComparison prints one line per matched combination and returns the
// number of regressions. STATUS stays the last column: tabwriter does not
// align the trailing cell, so its color codes do not shift the table.
func WriteComparison(w io.Writer, comps []benchmark.Comparison, threshold float64) (int, error) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ALPHA\tALIGN\tSIZE\tSERIAL %\tSIMD %\tRATIO\tRATIO %\tSTATUS")

	regressions := 0
	for _, c := range comps {
		status := ComparisonStatus(c, threshold)
		cell := status
		switch status {
		case StatusRegression:
			regressions++
			cell = regressionStyle.Render(status)
		case StatusImprovement:
			cell = improvementStyle.Render(status)
		}
		fmt.Fprintf(tw, "%d%%\t%d\t%d\t%+.2f%%\t%+.2f%%\t%.3f\t%+.2f%%\t%s\n",
			c.Params.Alpha, c.Params.Align, c.Params.Size,
			c.SerialDiff, c.SIMDDiff, c.Curr.Ratio(), c.RatioDiff, cell)
	}
	return regressions, tw.Flush()
}

// WriteTable prints records as an aligned table.
func WriteTable(w io.Writer, t benchmark.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ALPHA\tALIGN\tSIZE\tSERIAL\tSIMD\tRATIO")
	for _, r := range t {
		fmt.Fprintf(tw, "%d%%\t%d\t%d\t%g\t%g\t%.3f\n",
			r.Alpha, r.Align, r.Size, r.TimeSerial, r.TimeSIMD, r.Ratio())
	}
	return tw.Flush()
}
