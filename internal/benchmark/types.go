package benchmark

import (
	"errors"
	"fmt"
)

// ErrNoSamples is returned when every attempt of a measurement failed.
var ErrNoSamples = errors.New("no successful samples")

// Params is one point of the sweep.
type Params struct {
	Size  int `json:"size"`
	Align int `json:"align"`
	Alpha int `json:"alpha"`
}

func (p Params) String() string {
	return fmt.Sprintf("size=%d align=%d alpha=%d", p.Size, p.Align, p.Alpha)
}

// Record is a retained measurement of one parameter combination.
type Record struct {
	Size       int     `json:"size"`
	Align      int     `json:"align"`
	Alpha      int     `json:"alpha"`
	TimeSerial float64 `json:"time_serial"`
	TimeSIMD   float64 `json:"time_simd"`
}

// Params returns the combination the record was measured for.
func (r Record) Params() Params {
	return Params{Size: r.Size, Align: r.Align, Alpha: r.Alpha}
}

// Ratio is the normalized time, SIMD over serial.
func (r Record) Ratio() float64 {
	if r.TimeSerial == 0 {
		return 0
	}
	return r.TimeSIMD / r.TimeSerial
}

// Measurement is the outcome of running one executable Repeats times.
type Measurement struct {
	Samples  []float64
	Attempts int
	Failures int
}

// Mean returns the arithmetic mean of the samples, or false if there are none.
func (m Measurement) Mean() (float64, bool) {
	return Mean(m.Samples)
}

// Err reports ErrNoSamples when the measurement produced nothing usable.
func (m Measurement) Err() error {
	if len(m.Samples) == 0 {
		return fmt.Errorf("%d attempts, %d failed: %w", m.Attempts, m.Failures, ErrNoSamples)
	}
	return nil
}

// Summary describes the outcome of a sweep.
type Summary struct {
	Written int
	Skipped []Params
}

// Total is the number of combinations the sweep visited.
func (s Summary) Total() int {
	return s.Written + len(s.Skipped)
}
