// Package levels reads the seeded catalog of membership levels.
package levels

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gymfitness/membership/internal/common"
	"github.com/gymfitness/membership/internal/dbx"
	"github.com/gymfitness/membership/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// FindByName returns the catalog row for name, or common.ErrorNotFound.
func (r *PostgresRepository) FindByName(ctx context.Context, name models.LevelName) (*models.Level, error) {
	query := `SELECT id, name FROM levels WHERE name = $1`

	level := &models.Level{}
	if err := r.db.QueryRowContext(ctx, query, string(name)).Scan(&level.ID, &level.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return level, nil
}
