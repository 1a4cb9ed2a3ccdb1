package todos

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Repository persists to-do items. Every lookup is scoped by the owner's
// email; an item owned by someone else is reported as common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	ListByUser(ctx context.Context, email string) ([]*models.Todo, error)
	GetForUpdate(ctx context.Context, id int64, email string) (*models.Todo, error)
	Update(ctx context.Context, todo *models.Todo) (*models.Todo, error)
	Delete(ctx context.Context, id int64, email string) error
}
