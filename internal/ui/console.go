// Package ui renders human-facing progress and status lines on the console.
package ui

import (
	"fmt"
	"io"

	"casebench/internal/benchmark"
)

// CombinationObserver is told whether each visited combination was kept.
type CombinationObserver interface {
	ObserveCombination(retained bool)
}

// Console prints sweep progress. It implements benchmark.Progress.
type Console struct {
	out     io.Writer
	verbose bool
	total   int

	// Observer, when set, is notified of every finished combination.
	Observer CombinationObserver

	visited int
	// per alpha
	alphaVisited  int
	alphaRetained int
}

// NewConsole returns a Console for a sweep of total combinations. With
// verbose set, every combination gets its own line.
func NewConsole(out io.Writer, verbose bool, total int) *Console {
	return &Console{out: out, verbose: verbose, total: total}
}

func (c *Console) AlphaStarted(alpha int) {
	c.alphaVisited, c.alphaRetained = 0, 0
	fmt.Fprintf(c.out, "\n%s\n", headerStyle.Render(fmt.Sprintf("Running benchmarks for α=%d%%", alpha)))
}

func (c *Console) AlphaFinished(alpha int) {
	line := fmt.Sprintf("✓ α=%d%% done (%d/%d kept, %d/%d overall)",
		alpha, c.alphaRetained, c.alphaVisited, c.visited, c.total)
	fmt.Fprintln(c.out, successStyle.Render(line))
}

func (c *Console) CombinationFinished(p benchmark.Params, rec benchmark.Record, retained bool) {
	c.visited++
	c.alphaVisited++
	if retained {
		c.alphaRetained++
	}
	if c.Observer != nil {
		c.Observer.ObserveCombination(retained)
	}

	if !c.verbose {
		return
	}
	if !retained {
		fmt.Fprintln(c.out, warnStyle.Render(fmt.Sprintf("  %-28s skipped: no usable timing", p)))
		return
	}
	fmt.Fprintln(c.out, infoStyle.Render(fmt.Sprintf("  %-28s serial %-12g simd %-12g ratio %.3f",
		p, rec.TimeSerial, rec.TimeSIMD, rec.Ratio())))
}

// Saved announces where the results were written.
func Saved(w io.Writer, path string, sum benchmark.Summary) {
	fmt.Fprintf(w, "\nResults saved to %s (%d rows)\n", path, sum.Written)
	if n := len(sum.Skipped); n > 0 {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("%d of %d combinations produced no timing and were skipped", n, sum.Total())))
	}
}

// Figure announces a written chart.
func Figure(w io.Writer, path string) {
	fmt.Fprintln(w, infoStyle.Render("Figure written: "+path))
}

// Muted prints a de-emphasized line.
func Muted(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Error prints a highlighted error line.
func Error(w io.Writer, err error) {
	fmt.Fprintln(w, errorStyle.Render("Error: "+err.Error()))
}
