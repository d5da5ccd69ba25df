package journal

import (
	"context"
	"fmt"

	"shopkeep/internal/config"
	"shopkeep/internal/db"
)

// Open builds the journal selected by cfg.Journal.
func Open(ctx context.Context, cfg config.APIConfig) (Journal, error) {
	switch cfg.Journal {
	case config.JournalPostgres:
		pool, err := db.Connect(ctx, cfg.DatabaseURL, db.PoolOptions{MaxConns: cfg.DBMaxConns})
		if err != nil {
			return nil, err
		}
		pg, err := NewPostgres(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return pg, nil
	case config.JournalSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	case config.JournalNone, "":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown journal %q", cfg.Journal)
	}
}
