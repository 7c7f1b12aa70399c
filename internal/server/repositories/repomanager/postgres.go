package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Berkcanaskin/stellar/internal/server/migrations"
	"github.com/Berkcanaskin/stellar/internal/server/repositories/campaigns"
	"github.com/Berkcanaskin/stellar/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager serves PostgreSQL-backed repositories over a
// shared connection pool and applies embedded goose migrations on startup.
type PostgresRepositoryManager struct {
	db        *sql.DB
	users     *users.PostgresRepository
	campaigns *campaigns.PostgresRepository
}

func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresRepositoryManager{
		db:        db,
		users:     users.NewPostgresRepository(db),
		campaigns: campaigns.NewPostgresRepository(db),
	}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

func (m *PostgresRepositoryManager) Users() users.Repository { return m.users }

func (m *PostgresRepositoryManager) Vault() users.Vault { return m.users }

func (m *PostgresRepositoryManager) Campaigns() campaigns.Repository { return m.campaigns }

func (m *PostgresRepositoryManager) Close() error { return m.db.Close() }
