package db

import (
	"time"

	"casebench/internal/benchmark"
)

// RunRecorder mirrors a sweep into the history store. It satisfies
// benchmark.Recorder; closing it marks the run finished but leaves the store
// open for its owner. A run that is never closed stays unfinished.
type RunRecorder struct {
	store Store
	runID int64
	now   func() time.Time
}

// NewRunRecorder opens a new run in store.
func NewRunRecorder(store Store) (*RunRecorder, error) {
	r := &RunRecorder{store: store, now: time.Now}
	id, err := store.BeginRun(r.now())
	if err != nil {
		return nil, err
	}
	r.runID = id
	return r, nil
}

// RunID identifies the run being recorded.
func (r *RunRecorder) RunID() int64 {
	return r.runID
}

func (r *RunRecorder) Append(rec benchmark.Record) error {
	return r.store.SaveRecord(r.runID, rec)
}

func (r *RunRecorder) Close() error {
	return r.store.FinishRun(r.runID, r.now())
}
