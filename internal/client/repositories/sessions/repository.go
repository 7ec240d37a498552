// Package sessions persists the CLI's current sign-in in the local
// SQLite database. At most one session is stored.
package sessions

import (
	"context"

	"github.com/gymfitness/membership/internal/client/models"
)

type Repository interface {
	// Get returns (nil, nil) when nobody is signed in.
	Get(ctx context.Context) (*models.Session, error)
	Save(ctx context.Context, s *models.Session) error
	Clear(ctx context.Context) error
}
