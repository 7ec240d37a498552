package levels

import (
	"context"

	"github.com/gymfitness/membership/internal/server/models"
)

type Repository interface {
	FindByName(ctx context.Context, name models.LevelName) (*models.Level, error)
}
