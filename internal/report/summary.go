package report

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"casebench/internal/benchmark"
)

// AlignSummary condenses the rows of one alpha and alignment.
type AlignSummary struct {
	Alpha  int
	Align  int
	Points int
	// GeoMeanSpeedup is the geometric mean of serial/SIMD over all sizes.
	GeoMeanSpeedup float64
	BestSpeedup    float64
	BestSize       int
}

// Summarize groups t by alpha and alignment, both ascending.
func Summarize(t benchmark.Table) []AlignSummary {
	var out []AlignSummary
	for _, alpha := range t.Alphas() {
		byAlpha := t.WithAlpha(alpha)
		for _, align := range byAlpha.Aligns() {
			s := AlignSummary{Alpha: alpha, Align: align}
			var logSum float64
			for _, r := range byAlpha.WithAlign(align) {
				if r.TimeSerial <= 0 || r.TimeSIMD <= 0 {
					continue
				}
				speedup := r.TimeSerial / r.TimeSIMD
				logSum += math.Log(speedup)
				s.Points++
				if speedup > s.BestSpeedup {
					s.BestSpeedup = speedup
					s.BestSize = r.Size
				}
			}
			if s.Points > 0 {
				s.GeoMeanSpeedup = math.Exp(logSum / float64(s.Points))
			}
			out = append(out, s)
		}
	}
	return out
}

// WriteSummary prints summaries as an aligned table.
func WriteSummary(w io.Writer, summaries []AlignSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "ALPHA\tALIGN\tPOINTS\tGEOMEAN SPEEDUP\tBEST SPEEDUP\tAT SIZE")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%d%%\t%d\t%d\t%.2fx\t%.2fx\t%d\n",
			s.Alpha, s.Align, s.Points, s.GeoMeanSpeedup, s.BestSpeedup, s.BestSize)
	}
	return tw.Flush()
}
