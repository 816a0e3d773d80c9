package migration

import (
	"context"

	"portfolio-studio/pkg/logger"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration represents one idempotent schema step.
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// RunMigrations executes all schema migrations on startup. Each step is
// written to be safe to re-run.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log *logger.Logger) error {
	migrations := []Migration{
		{Name: "create_portfolio_sessions", Up: createPortfolioSessions},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			log.Error("migration failed", "name", m.Name, "error", err)
			return err
		}
		log.Info("migration completed", "name", m.Name)
	}
	return nil
}

func createPortfolioSessions(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS portfolio_sessions (
			id UUID PRIMARY KEY,
			user_name TEXT NOT NULL DEFAULT '',
			user_email TEXT NOT NULL DEFAULT '',
			user_role TEXT NOT NULL DEFAULT '',
			document JSONB NOT NULL DEFAULT '[]'::jsonb,
			transcript JSONB NOT NULL DEFAULT '[]'::jsonb,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		);
	`
	_, err := pool.Exec(ctx, query)
	return err
}
