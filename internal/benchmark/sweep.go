package benchmark

import (
	"context"
	"fmt"
	"log/slog"

	"casebench/internal/config"
)

// Progress receives sweep events. Calls come from the sweeping goroutine.
type Progress interface {
	AlphaStarted(alpha int)
	AlphaFinished(alpha int)
	CombinationFinished(p Params, rec Record, retained bool)
}

// Sweep measures every combination of Space, one at a time.
type Sweep struct {
	Space     Space
	Generator Generator
	Runner    *Runner
	Serial    Executable
	SIMD      Executable
	Recorder  Recorder
	// WorkDir holds the generated inputs. Empty means the system temp dir.
	WorkDir  string
	Progress Progress
}

// NewSweep wires a sweep from cfg. The caller owns rec and closes it.
func NewSweep(cfg *config.Config, rec Recorder) *Sweep {
	runner := NewRunner(cfg.Repeats, cfg.RepeatDelay)
	runner.AttemptTimeout = cfg.AttemptTimeout
	runner.Mode = cfg.Mode
	runner.Parse = MarkerParser(cfg.Marker)

	return &Sweep{
		Space:     SpaceFromConfig(cfg),
		Generator: NewExecGenerator(cfg.Exec.Generator),
		Runner:    runner,
		Serial:    Executable{Name: "serial", Path: cfg.Exec.Serial},
		SIMD:      Executable{Name: "simd", Path: cfg.Exec.SIMD},
		Recorder:  rec,
		WorkDir:   cfg.WorkDir,
	}
}

// Run sweeps alpha, then alignment, then size. A generator failure or a
// recorder failure aborts the sweep; combinations without a usable mean are
// skipped and listed in the summary.
func (s *Sweep) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	current, started := 0, false
	err := s.Space.Each(func(p Params) error {
		if !started || p.Alpha != current {
			if started {
				s.alphaFinished(current)
			}
			current, started = p.Alpha, true
			s.alphaStarted(current)
		}

		rec, ok, err := s.measure(ctx, p)
		if err != nil {
			return err
		}
		if !ok {
			slog.Debug("combination skipped", "size", p.Size, "align", p.Align, "alpha", p.Alpha)
			sum.Skipped = append(sum.Skipped, p)
			s.combinationFinished(p, rec, false)
			return nil
		}

		if err := s.Recorder.Append(rec); err != nil {
			return fmt.Errorf("record %s: %w", p, err)
		}
		sum.Written++
		s.combinationFinished(p, rec, true)
		return nil
	})
	if err != nil {
		return sum, err
	}
	if started {
		s.alphaFinished(current)
	}
	return sum, nil
}

func (s *Sweep) measure(ctx context.Context, p Params) (Record, bool, error) {
	in, err := AcquireInput(ctx, s.Generator, s.WorkDir, p)
	if err != nil {
		return Record{}, false, err
	}
	defer func() {
		if err := in.Release(); err != nil {
			slog.Warn("failed to release input", "path", in.Path, "error", err)
		}
	}()

	serial, err := s.Runner.Measure(ctx, s.Serial, in.Path)
	if err != nil {
		return Record{}, false, err
	}
	simd, err := s.Runner.Measure(ctx, s.SIMD, in.Path)
	if err != nil {
		return Record{}, false, err
	}

	rec := Record{Size: p.Size, Align: p.Align, Alpha: p.Alpha}
	var okSerial, okSIMD bool
	rec.TimeSerial, okSerial = serial.Mean()
	rec.TimeSIMD, okSIMD = simd.Mean()
	if !okSerial || !okSIMD {
		slog.Debug("measurement incomplete",
			"params", p.String(),
			"serial_error", serial.Err(),
			"simd_error", simd.Err())
		return rec, false, nil
	}
	return rec, true, nil
}

func (s *Sweep) alphaStarted(alpha int) {
	if s.Progress != nil {
		s.Progress.AlphaStarted(alpha)
	}
}

func (s *Sweep) alphaFinished(alpha int) {
	if s.Progress != nil {
		s.Progress.AlphaFinished(alpha)
	}
}

func (s *Sweep) combinationFinished(p Params, rec Record, retained bool) {
	if s.Progress != nil {
		s.Progress.CombinationFinished(p, rec, retained)
	}
}
