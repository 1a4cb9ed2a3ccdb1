package users

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Repository persists accounts. Create returns common.ErrorAlreadyExists for
// a duplicate email; GetByEmail returns common.ErrorNotFound for an unknown
// one.
type Repository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
