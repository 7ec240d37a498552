// Package billings stores the payment details captured at sign-up.
package billings

import (
	"context"
	"fmt"

	"github.com/gymfitness/membership/internal/dbx"
	"github.com/gymfitness/membership/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, billing *models.Billing) error {
	query := `
		INSERT INTO billings (user_id, bank_no, clearing_no)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, billing.UserID, billing.BankNo, billing.ClearingNo); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
