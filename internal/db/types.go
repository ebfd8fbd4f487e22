package db

import (
	"time"

	"casebench/internal/benchmark"
)

// Store keeps a history of sweeps and the records each one retained.
type Store interface {
	Close() error
	BeginRun(startedAt time.Time) (int64, error)
	SaveRecord(runID int64, rec benchmark.Record) error
	FinishRun(runID int64, finishedAt time.Time) error
	ListRuns(limit int) ([]Run, error)
	RunRecords(runID int64) (benchmark.Table, error)
}

// Run is one recorded sweep.
type Run struct {
	ID         int64     `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"` // zero while running or after a crash
	Rows       int       `json:"rows"`
}

// Finished reports whether the sweep completed.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}
