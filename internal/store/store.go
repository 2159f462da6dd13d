// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/wpm/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for round history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY,
			source TEXT NOT NULL,
			outcome TEXT NOT NULL,
			target_len INTEGER NOT NULL,
			typed_len INTEGER NOT NULL,
			correct_len INTEGER NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_ended_at ON rounds(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_source ON rounds(source);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRound stores a finished round.
func (s *Store) InsertRound(ctx context.Context, r model.RoundResult) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (source, outcome, target_len, typed_len, correct_len, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Source,
		string(r.Outcome),
		r.TargetLen,
		r.TypedLen,
		r.CorrectLen,
		r.EndedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRounds returns rounds in chronological order. last > 0 keeps only the
// most recent rounds.
func (s *Store) ListRounds(ctx context.Context, last int) ([]model.RoundResult, error) {
	limit := -1
	if last > 0 {
		limit = last
	}
	query := `SELECT source, outcome, target_len, typed_len, correct_len, ended_at FROM (
			SELECT id, source, outcome, target_len, typed_len, correct_len, ended_at
			FROM rounds
			ORDER BY ended_at DESC, id DESC
			LIMIT ?
		)
		ORDER BY ended_at ASC, id ASC`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var rounds []model.RoundResult
	for rows.Next() {
		var r model.RoundResult
		var outcome, endedAt string
		if err := rows.Scan(&r.Source, &outcome, &r.TargetLen, &r.TypedLen, &r.CorrectLen, &endedAt); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		r.Outcome = model.Outcome(outcome)
		r.EndedAt = parsed
		rounds = append(rounds, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}
