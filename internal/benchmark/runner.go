package benchmark

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// execCommand allows tests to substitute the process launcher.
var execCommand = exec.CommandContext

// Executable is one of the benchmarked converters.
type Executable struct {
	Name string // "serial" or "simd"
	Path string
}

// AttemptObserver is notified after every attempt of a measurement.
type AttemptObserver interface {
	ObserveAttempt(variant string, ok bool, elapsed time.Duration)
}

// Runner runs a converter repeatedly and collects its reported times.
type Runner struct {
	Repeats int
	// Delay is slept after every attempt.
	Delay time.Duration
	// AttemptTimeout bounds a single attempt. Zero waits forever.
	AttemptTimeout time.Duration
	Mode           string
	Parse          TimeParser
	Observer       AttemptObserver
}

// NewRunner returns a Runner using the default marker parser.
func NewRunner(repeats int, delay time.Duration) *Runner {
	return &Runner{
		Repeats: repeats,
		Delay:   delay,
		Mode:    "upper",
		Parse:   MarkerParser(DefaultMarker),
	}
}

// Measure runs exe against input Repeats times. Failed attempts only reduce
// the sample count; the returned error is non-nil only when ctx ends.
func (r *Runner) Measure(ctx context.Context, exe Executable, input string) (Measurement, error) {
	var m Measurement
	for i := 0; i < r.Repeats; i++ {
		if err := ctx.Err(); err != nil {
			return m, err
		}

		m.Attempts++
		if t, ok := r.attempt(ctx, exe, input); ok && t > 0 {
			m.Samples = append(m.Samples, t)
		} else {
			m.Failures++
		}

		if r.Delay > 0 {
			timer := time.NewTimer(r.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return m, ctx.Err()
			case <-timer.C:
			}
		}
	}
	return m, nil
}

func (r *Runner) attempt(ctx context.Context, exe Executable, input string) (float64, bool) {
	if r.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.AttemptTimeout)
		defer cancel()
	}

	mode := r.Mode
	if mode == "" {
		mode = "upper"
	}
	cmd := execCommand(ctx, exe.Path, "--mode", mode, "-i", input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		slog.Debug("benchmark attempt failed",
			"variant", exe.Name,
			"path", exe.Path,
			"error", err,
			"stderr", strings.TrimSpace(stderr.String()))
		r.observe(exe.Name, false, elapsed)
		return 0, false
	}

	parse := r.Parse
	if parse == nil {
		parse = MarkerParser(DefaultMarker)
	}
	t, ok := parse(stdout.String())
	if !ok {
		slog.Debug("no timing line in output", "variant", exe.Name, "path", exe.Path)
	}
	r.observe(exe.Name, ok && t > 0, elapsed)
	return t, ok
}

func (r *Runner) observe(variant string, ok bool, elapsed time.Duration) {
	if r.Observer != nil {
		r.Observer.ObserveAttempt(variant, ok, elapsed)
	}
}
