// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/gymfitness/membership/internal/dbx"
	"github.com/gymfitness/membership/internal/server/migrations"
	"github.com/gymfitness/membership/internal/server/repositories/billings"
	"github.com/gymfitness/membership/internal/server/repositories/levels"
	"github.com/gymfitness/membership/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Levels returns a levels.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Levels(db dbx.DBTX) levels.Repository {
	return levels.NewPostgresRepository(db)
}

// Billings returns a billings.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Billings(db dbx.DBTX) billings.Repository {
	return billings.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations, which also seed the
// levels catalog.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
