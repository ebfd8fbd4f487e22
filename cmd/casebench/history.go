package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"casebench/internal/benchmark"
	"casebench/internal/db"
	"casebench/internal/ui"

	"github.com/spf13/cobra"
)

var errHistoryDisabled = errors.New("history database not configured (set history.type or --history)")

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect sweeps recorded in the history database",
	}
	cmd.PersistentFlags().String("history", "", "History database type (sqlite or postgres)")
	cmd.PersistentFlags().String("history-dsn", "", "History database file or connection string")

	cmd.AddCommand(newHistoryListCmd(a), newHistoryShowCmd(a), newHistoryDiffCmd(a))
	return cmd
}

func (a *app) openHistory() (db.Store, error) {
	hc := db.StoreConfig{Type: a.cfg.History.Type, ConnectionString: a.cfg.History.DSN}
	if !hc.Enabled() {
		return nil, errHistoryDisabled
	}
	store, err := newStoreFunc(hc)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return store, nil
}

func newHistoryListCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				ui.Muted(out, "No runs recorded.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tSTARTED\tDURATION\tROWS")
			for _, r := range runs {
				duration := "running"
				if r.Finished() {
					duration = r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", r.ID, r.StartedAt.Format("2006-01-02 15:04:05"), duration, r.Rows)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

func newHistoryShowCmd(a *app) *cobra.Command {
	var export string
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the records of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseRunID(args[0])
			if err != nil {
				return err
			}
			store, err := a.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			table, err := store.RunRecords(id)
			if err != nil {
				return err
			}

			if export != "" {
				if err := exportTable(export, table); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows of run %d to %s\n", len(table), id, export)
				return nil
			}
			return ui.WriteTable(cmd.OutOrStdout(), table)
		},
	}
	cmd.Flags().StringVar(&export, "export", "", "Write the records to this CSV file instead of printing them")
	return cmd
}

func newHistoryDiffCmd(a *app) *cobra.Command {
	var threshold float64
	var failOnRegression bool
	cmd := &cobra.Command{
		Use:   "diff <old-run-id> <new-run-id>",
		Short: "Compare the normalized times of two runs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldID, err := parseRunID(args[0])
			if err != nil {
				return err
			}
			newID, err := parseRunID(args[1])
			if err != nil {
				return err
			}
			store, err := a.openHistory()
			if err != nil {
				return err
			}
			defer store.Close()

			prev, err := store.RunRecords(oldID)
			if err != nil {
				return err
			}
			curr, err := store.RunRecords(newID)
			if err != nil {
				return err
			}

			comps := benchmark.Compare(prev, curr)
			out := cmd.OutOrStdout()
			if len(comps) == 0 {
				ui.Muted(out, "Runs %d and %d share no combinations.", oldID, newID)
				return nil
			}
			regressions, err := ui.WriteComparison(out, comps, threshold)
			if err != nil {
				return err
			}
			if failOnRegression && regressions > 0 {
				return fmt.Errorf("%d combinations regressed by more than %.1f%%", regressions, threshold)
			}
			return nil
		},
	}
	cmd.Flags().Float64Var(&threshold, "threshold", 10.0, "Percentage change of the normalized time to flag")
	cmd.Flags().BoolVar(&failOnRegression, "fail", false, "Exit non-zero when any combination regressed")
	return cmd
}

func parseRunID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid run id %q", s)
	}
	return id, nil
}

func exportTable(path string, t benchmark.Table) error {
	store, err := benchmark.CreateCSVStore(path)
	if err != nil {
		return err
	}
	for _, r := range t {
		if err := store.Append(r); err != nil {
			store.Close()
			return err
		}
	}
	return store.Close()
}
