package runlog

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/agentica-go/agentica/core"

	_ "modernc.org/sqlite"
)

// timeFormat is how timestamps are stored; RFC 3339 keeps the column readable
// and sorts chronologically as text for same-offset values.
const timeFormat = time.RFC3339Nano

// SQLiteStore is a RunStore backed by a SQLite database file. It uses the
// pure-Go modernc.org/sqlite driver, so no cgo is involved.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if necessary) the run log database at path.
func Open(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open run log %s: %w", path, err)
	}
	// a single connection serializes writers and avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open run log %s: %w", path, err)
	}
	if err := createTables(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init run log %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Save stores (or overwrites) the record under its ID.
func (s *SQLiteStore) Save(rec core.RunRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("run record requires an id")
	}
	_, err := s.db.Exec(`
		INSERT INTO runs (id, session_id, agent, scenario, started_at, finished_at, steps, total_reward, summary, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			session_id = excluded.session_id,
			agent = excluded.agent,
			scenario = excluded.scenario,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			steps = excluded.steps,
			total_reward = excluded.total_reward,
			summary = excluded.summary,
			error = excluded.error
	`, rec.ID, rec.SessionID, rec.Agent, rec.Scenario,
		rec.StartedAt.UTC().Format(timeFormat), rec.FinishedAt.UTC().Format(timeFormat),
		rec.Steps, rec.TotalReward, rec.Summary, rec.Err)
	if err != nil {
		return fmt.Errorf("save run %s: %w", rec.ID, err)
	}
	return nil
}

// Get returns the record with the given ID or ErrNotFound.
func (s *SQLiteStore) Get(id string) (core.RunRecord, error) {
	row := s.db.QueryRow(`
		SELECT id, session_id, agent, scenario, started_at, finished_at, steps, total_reward, summary, error
		FROM runs WHERE id = ?
	`, id)
	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.RunRecord{}, ErrNotFound
		}
		return core.RunRecord{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return rec, nil
}

// List returns records ordered most recent first (by StartedAt, ties broken
// by ID). A limit <= 0 returns everything.
func (s *SQLiteStore) List(limit int) ([]core.RunRecord, error) {
	if limit <= 0 {
		limit = -1 // SQLite reads a negative LIMIT as "no cap"
	}
	rows, err := s.db.Query(`
		SELECT id, session_id, agent, scenario, started_at, finished_at, steps, total_reward, summary, error
		FROM runs ORDER BY started_at DESC, id ASC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var recs []core.RunRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return recs, nil
}

// Delete removes the record if present or returns ErrNotFound.
func (s *SQLiteStore) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (core.RunRecord, error) {
	var rec core.RunRecord
	var started, finished string
	if err := row.Scan(&rec.ID, &rec.SessionID, &rec.Agent, &rec.Scenario,
		&started, &finished, &rec.Steps, &rec.TotalReward, &rec.Summary, &rec.Err); err != nil {
		return core.RunRecord{}, err
	}
	var err error
	if rec.StartedAt, err = time.Parse(timeFormat, started); err != nil {
		return core.RunRecord{}, fmt.Errorf("parse started_at of run %s: %w", rec.ID, err)
	}
	if rec.FinishedAt, err = time.Parse(timeFormat, finished); err != nil {
		return core.RunRecord{}, fmt.Errorf("parse finished_at of run %s: %w", rec.ID, err)
	}
	return rec, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			agent TEXT NOT NULL,
			scenario TEXT NOT NULL DEFAULT '',
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			total_reward REAL NOT NULL DEFAULT 0,
			summary TEXT NOT NULL DEFAULT '',
			error TEXT NOT NULL DEFAULT ''
		);
	`)
	return err
}
