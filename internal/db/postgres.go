package db

import (
	"database/sql"
	"fmt"
	"time"

	"casebench/internal/benchmark"

	_ "github.com/lib/pq"
)

// PostgresStore implements Store using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new Postgres store and applies migrations
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id BIGSERIAL PRIMARY KEY,
			started_at BIGINT NOT NULL,
			finished_at BIGINT
		);`,
		`CREATE TABLE IF NOT EXISTS records (
			id BIGSERIAL PRIMARY KEY,
			run_id BIGINT NOT NULL REFERENCES runs(id),
			size INTEGER NOT NULL,
			align INTEGER NOT NULL,
			alpha INTEGER NOT NULL,
			time_serial DOUBLE PRECISION NOT NULL,
			time_simd DOUBLE PRECISION NOT NULL
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
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) BeginRun(startedAt time.Time) (int64, error) {
	var id int64
	err := s.db.QueryRow(`INSERT INTO runs (started_at) VALUES ($1) RETURNING id`, startedAt.UnixMilli()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to begin run: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) SaveRecord(runID int64, rec benchmark.Record) error {
	query := `INSERT INTO records (run_id, size, align, alpha, time_serial, time_simd) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := s.db.Exec(query, runID, rec.Size, rec.Align, rec.Alpha, rec.TimeSerial, rec.TimeSIMD)
	return err
}

func (s *PostgresStore) FinishRun(runID int64, finishedAt time.Time) error {
	_, err := s.db.Exec(`UPDATE runs SET finished_at = $1 WHERE id = $2`, finishedAt.UnixMilli(), runID)
	return err
}

// ListRuns returns the most recent runs first
func (s *PostgresStore) ListRuns(limit int) ([]Run, error) {
	query := `
	SELECT r.id, r.started_at, r.finished_at, COUNT(rec.run_id)
	FROM runs r LEFT JOIN records rec ON rec.run_id = r.id
	GROUP BY r.id, r.started_at, r.finished_at
	ORDER BY r.id DESC
	LIMIT $1`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (s *PostgresStore) RunRecords(runID int64) (benchmark.Table, error) {
	query := `SELECT size, align, alpha, time_serial, time_simd FROM records WHERE run_id = $1 ORDER BY id`
	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}
