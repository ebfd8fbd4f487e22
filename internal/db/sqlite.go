package db

import (
	"database/sql"
	"fmt"
	"time"

	"casebench/internal/benchmark"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store and applies migrations
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at INTEGER NOT NULL,
			finished_at INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS records (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			size INTEGER NOT NULL,
			align INTEGER NOT NULL,
			alpha INTEGER NOT NULL,
			time_serial REAL NOT NULL,
			time_simd REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_records_run ON records(run_id);`,
	}
	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) BeginRun(startedAt time.Time) (int64, error) {
	res, err := s.db.Exec(`INSERT INTO runs (started_at) VALUES (?)`, startedAt.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to begin run: %w", err)
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) SaveRecord(runID int64, rec benchmark.Record) error {
	query := `INSERT INTO records (run_id, size, align, alpha, time_serial, time_simd) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query, runID, rec.Size, rec.Align, rec.Alpha, rec.TimeSerial, rec.TimeSIMD)
	return err
}

func (s *SQLiteStore) FinishRun(runID int64, finishedAt time.Time) error {
	_, err := s.db.Exec(`UPDATE runs SET finished_at = ? WHERE id = ?`, finishedAt.UnixMilli(), runID)
	return err
}

// ListRuns returns the most recent runs first
func (s *SQLiteStore) ListRuns(limit int) ([]Run, error) {
	query := `
	SELECT r.id, r.started_at, r.finished_at, COUNT(rec.run_id)
	FROM runs r LEFT JOIN records rec ON rec.run_id = r.id
	GROUP BY r.id, r.started_at, r.finished_at
	ORDER BY r.id DESC
	LIMIT ?`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (s *SQLiteStore) RunRecords(runID int64) (benchmark.Table, error) {
	query := `SELECT size, align, alpha, time_serial, time_simd FROM records WHERE run_id = ? ORDER BY rowid`
	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var (
			run      Run
			started  int64
			finished sql.NullInt64
		)
		if err := rows.Scan(&run.ID, &started, &finished, &run.Rows); err != nil {
			return nil, err
		}
		run.StartedAt = time.UnixMilli(started)
		if finished.Valid {
			run.FinishedAt = time.UnixMilli(finished.Int64)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanRecords(rows *sql.Rows) (benchmark.Table, error) {
	var t benchmark.Table
	for rows.Next() {
		var rec benchmark.Record
		if err := rows.Scan(&rec.Size, &rec.Align, &rec.Alpha, &rec.TimeSerial, &rec.TimeSIMD); err != nil {
			return nil, err
		}
		t = append(t, rec)
	}
	return t, rows.Err()
}
