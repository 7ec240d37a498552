package repomanager

import (
	"context"
	"database/sql"

	"github.com/gymfitness/membership/internal/dbx"
	"github.com/gymfitness/membership/internal/server/repositories/billings"
	"github.com/gymfitness/membership/internal/server/repositories/levels"
	"github.com/gymfitness/membership/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so that callers can
// point the same set of stores at either the pool or an open transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Levels(db dbx.DBTX) levels.Repository
	Billings(db dbx.DBTX) billings.Repository
}
