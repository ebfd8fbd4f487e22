package main

import (
	"fmt"

	"casebench/internal/benchmark"
	"casebench/internal/report"
	"casebench/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newRenderCmd(a *app) *cobra.Command {
	var noSummary bool
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw one chart per alpha from an existing results CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, !noSummary)
		},
	}
	addRenderFlags(cmd.Flags())
	cmd.Flags().BoolVar(&noSummary, "no-summary", false, "Skip the speedup table")
	return cmd
}

func addRenderFlags(fs *pflag.FlagSet) {
	if fs.Lookup("csv") == nil {
		fs.String("csv", "", "Results CSV path")
	}
	fs.String("figures", "", "Output directory for the charts")
}

func newRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sweep, then render the charts",
		Long: `Runs the full benchmark: every combination is measured and written to the
results CSV, then one chart per alpha is drawn from that file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.sweep(cmd); err != nil {
				return err
			}
			return a.render(cmd, true)
		},
	}
	addSweepFlags(cmd.Flags())
	addRenderFlags(cmd.Flags())
	return cmd
}

// render reads the results CSV and writes the charts and the summary.
func (a *app) render(cmd *cobra.Command, summary bool) error {
	cfg := a.cfg
	out := cmd.OutOrStdout()

	table, err := benchmark.ReadTable(cfg.Output.CSV)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}

	space := benchmark.SpaceFromConfig(cfg)
	paths, err := report.NewRenderer(cfg.Output.Figures, space.Alphas).Render(table)
	for _, p := range paths {
		ui.Figure(out, p)
	}
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		ui.Muted(out, "No rows in %s; nothing to draw.", cfg.Output.CSV)
		return nil
	}

	if summary {
		fmt.Fprintln(out)
		return report.WriteSummary(out, report.Summarize(table))
	}
	return nil
}
