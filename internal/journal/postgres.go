package journal

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(ctx context.Context, pool *pgxpool.Pool) (*Postgres, error) {
	p := &Postgres{db: pool}
	if err := p.Migrate(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Postgres) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE SCHEMA IF NOT EXISTS shopkeep`,
		`CREATE TABLE IF NOT EXISTS shopkeep.journal (
			id UUID PRIMARY KEY,
			session_id UUID NOT NULL,
			action TEXT NOT NULL,
			event TEXT NOT NULL DEFAULT '',
			severity TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL,
			currency_delta NUMERIC NOT NULL DEFAULT 0,
			energy_delta INTEGER NOT NULL DEFAULT 0,
			reputation_delta INTEGER NOT NULL DEFAULT 0,
			at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS journal_session_at_idx ON shopkeep.journal (session_id, at)`,
	}
	for _, stmt := range stmts {
		if _, err := p.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate journal: %w", err)
		}
	}
	return nil
}

func (p *Postgres) Record(ctx context.Context, e Entry) error {
	_, err := p.db.Exec(ctx, `
		INSERT INTO shopkeep.journal (id, session_id, action, event, severity, message, currency_delta, energy_delta, reputation_delta, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9, $10)
	`, e.ID, e.SessionID, string(e.Action), e.Event, e.Severity, e.Message, e.CurrencyDelta.String(), e.EnergyDelta, e.ReputationDelta, e.At)
	if err != nil {
		return fmt.Errorf("record journal entry: %w", err)
	}
	return nil
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
