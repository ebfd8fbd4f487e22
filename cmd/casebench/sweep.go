package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"casebench/internal/benchmark"
	"casebench/internal/db"
	"casebench/internal/telemetry"
	"casebench/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newStoreFunc allows tests to substitute the history backend.
var newStoreFunc = db.NewStore

func newSweepCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Measure every combination and write the results CSV",
		Long: `Runs the generator, the serial converter and the SIMD converter for every
size, alignment and alpha combination and appends the mean timings to the
results CSV. Combinations without a usable timing are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.sweep(cmd)
			return err
		},
	}
	addSweepFlags(cmd.Flags())
	return cmd
}

func addSweepFlags(fs *pflag.FlagSet) {
	fs.IntP("repeats", "n", 0, "Runs per executable and combination")
	fs.Duration("repeat-delay", 0, "Pause after every run")
	fs.Duration("attempt-timeout", 0, "Kill a run after this long (0 waits forever)")
	fs.String("mode", "", "Conversion mode passed to the converters")
	fs.String("marker", "", "Substring identifying the timing line")
	fs.String("generator", "", "Path to the input generator")
	fs.String("serial", "", "Path to the serial converter")
	fs.String("simd", "", "Path to the SIMD converter")
	fs.String("csv", "", "Results CSV path")
	fs.String("work-dir", "", "Directory for generated inputs (default is the system temp dir)")
	fs.String("history", "", "Also record the run in a history database (sqlite or postgres)")
	fs.String("history-dsn", "", "History database file or connection string")
	fs.String("metrics-addr", "", "Serve Prometheus metrics on this address during the sweep")
	fs.String("metrics-file", "", "Write final metrics to this file in text format")
}

// sweep runs the measurement phase and returns its summary.
func (a *app) sweep(cmd *cobra.Command) (benchmark.Summary, error) {
	cfg := a.cfg
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	metrics := telemetry.NewMetrics()
	if cfg.Metrics.Addr != "" {
		srvCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := telemetry.StartMetricsServer(srvCtx, cfg.Metrics.Addr, metrics); err != nil {
				telemetry.LogError("metrics server failed", err, "addr", cfg.Metrics.Addr)
			}
		}()
	}

	csvStore, err := benchmark.CreateCSVStore(cfg.Output.CSV)
	if err != nil {
		return benchmark.Summary{}, err
	}
	recorders := benchmark.MultiRecorder{csvStore}

	hc := db.StoreConfig{Type: cfg.History.Type, ConnectionString: cfg.History.DSN}
	if hc.Enabled() {
		store, err := newStoreFunc(hc)
		if err != nil {
			csvStore.Close()
			return benchmark.Summary{}, fmt.Errorf("failed to open history: %w", err)
		}
		defer store.Close()

		runRec, err := db.NewRunRecorder(store)
		if err != nil {
			csvStore.Close()
			return benchmark.Summary{}, fmt.Errorf("failed to start history run: %w", err)
		}
		recorders = append(recorders, runRec)
		slog.Info("recording history", "type", hc.Type, "run", runRec.RunID())
	}

	s := benchmark.NewSweep(cfg, recorders)
	s.Runner.Observer = metrics
	console := ui.NewConsole(out, cfg.Verbose, s.Space.Len())
	console.Observer = metrics
	s.Progress = console

	slog.Info("starting sweep",
		"combinations", s.Space.Len(),
		"repeats", cfg.Repeats,
		"csv", cfg.Output.CSV)

	sum, runErr := s.Run(ctx)
	var closeErr error
	if runErr != nil {
		// An aborted sweep keeps its history run unfinished.
		closeErr = csvStore.Close()
	} else {
		closeErr = recorders.Close()
	}

	if cfg.Metrics.File != "" {
		if err := metrics.WriteTextfile(cfg.Metrics.File); err != nil {
			telemetry.LogError("failed to write metrics", err, "path", cfg.Metrics.File)
		}
	}

	if runErr != nil {
		return sum, errors.Join(runErr, closeErr)
	}
	if closeErr != nil {
		return sum, fmt.Errorf("failed to close results: %w", closeErr)
	}

	ui.Saved(out, cfg.Output.CSV, sum)
	slog.Info("sweep finished", "written", sum.Written, "skipped", len(sum.Skipped))
	return sum, nil
}
