package billings

import (
	"context"

	"github.com/gymfitness/membership/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, billing *models.Billing) error
}
