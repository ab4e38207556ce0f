package notes

import (
	"context"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
)

// Repository stores notes. Every method is scoped to a single owner.
type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	ListByOwner(ctx context.Context, userID string) ([]*models.Note, error)
	SearchByTitle(ctx context.Context, userID, phrase string) ([]*models.Note, error)
	GetByID(ctx context.Context, userID, id string) (*models.Note, error)
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteAll(ctx context.Context, userID string) (int64, error)
}
