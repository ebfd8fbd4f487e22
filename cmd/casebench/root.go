package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"casebench/internal/config"
	"casebench/internal/telemetry"
	"casebench/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	exit             = os.Exit
	stderr io.Writer = os.Stderr
)

// app is the state shared by every command of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
}

// flagKeys maps command-line flags to configuration keys. A flag only
// overrides the configuration when it is set explicitly.
var flagKeys = map[string]string{
	"verbose":         "verbose",
	"log-file":        "log_file",
	"repeats":         "repeats",
	"repeat-delay":    "repeat_delay",
	"attempt-timeout": "attempt_timeout",
	"mode":            "mode",
	"marker":          "marker",
	"generator":       "exec.generator",
	"serial":          "exec.serial",
	"simd":            "exec.simd",
	"csv":             "output.csv",
	"figures":         "output.figures",
	"work-dir":        "work_dir",
	"history":         "history.type",
	"history-dsn":     "history.dsn",
	"metrics-addr":    "metrics.addr",
	"metrics-file":    "metrics.file",
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "casebench",
		Short: "Benchmark serial and SIMD case converters and chart the results",
		Long: `casebench sweeps input size, buffer alignment and alpha, runs a serial and a
SIMD case converter against generated inputs, records the mean timings to CSV
and draws one comparison chart per alpha.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd.Flags())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./casebench.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().String("log-file", "", "Also write JSON logs to this file")

	rootCmd.AddCommand(
		newRunCmd(a),
		newSweepCmd(a),
		newRenderCmd(a),
		newSpaceCmd(a),
		newHistoryCmd(a),
		newConfigCmd(a),
	)
	return rootCmd
}

// load binds the explicitly set flags of the running command and builds the
// validated configuration.
func (a *app) load(flags *pflag.FlagSet) error {
	if err := bindFlags(a.v, flags); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	telemetry.InitLogger(cfg.Verbose, cfg.LogFile)
	return nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("failed to bind flag --%s: %w", f.Name, bindErr)
		}
	})
	return err
}

// Execute runs the root command until it finishes or a termination signal
// arrives. This is called by main.main().
func Execute() {
	// Wrap Execute in panic recovery for graceful shutdown
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(stderr, "\n=== CRITICAL ERROR: Command Execution Panic ===\n")
			fmt.Fprintf(stderr, "Error: %v\n", r)
			exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		ui.Error(stderr, err)
		ui.Muted(stderr, "Run 'casebench --help' for usage.")
		stop()
		exit(1)
	}
}
