package records

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Record, error)
	Create(ctx context.Context, rec *models.Record) error
	Update(ctx context.Context, email string, patch models.RecordPatch) error
	Delete(ctx context.Context, email string) error
}
