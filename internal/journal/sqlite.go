package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type SQLite struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite journal: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	s := &SQLite{db: db}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS journal (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			action TEXT NOT NULL,
			event TEXT NOT NULL DEFAULT '',
			severity TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			currency_delta TEXT NOT NULL DEFAULT '0',
			energy_delta INTEGER NOT NULL DEFAULT 0,
			reputation_delta INTEGER NOT NULL DEFAULT 0,
			at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_journal_session_at ON journal(session_id, at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate journal: %w", err)
		}
	}
	return nil
}

func (s *SQLite) Record(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO journal (id, session_id, action, event, severity, message, currency_delta, energy_delta, reputation_delta, at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID.String(), e.SessionID.String(), string(e.Action), e.Event, e.Severity, e.Message,
		e.CurrencyDelta.String(), e.EnergyDelta, e.ReputationDelta, e.At.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record journal entry: %w", err)
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
