package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/gymfitness/membership/internal/client/models"
	"github.com/gymfitness/membership/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (*models.Session, error) {
	var s models.Session
	var levels string
	err := r.db.QueryRowContext(ctx, `
		SELECT email, firstname, surname, user_id, levels, access_token, saved_at
		FROM session WHERE id = 1`).
		Scan(&s.Email, &s.FirstName, &s.Surname, &s.UserID, &levels, &s.AccessToken, &s.SavedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if levels != "" {
		s.Levels = strings.Split(levels, ",")
	}
	return &s, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, s *models.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO session (id, email, firstname, surname, user_id, levels, access_token, saved_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			firstname = excluded.firstname,
			surname = excluded.surname,
			user_id = excluded.user_id,
			levels = excluded.levels,
			access_token = excluded.access_token,
			saved_at = excluded.saved_at
	`, s.Email, s.FirstName, s.Surname, s.UserID, strings.Join(s.Levels, ","), s.AccessToken, s.SavedAt)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
