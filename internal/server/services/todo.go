package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
)

// TodoService manages the to-do items of an authenticated owner. The owner
// is always the identity subject; it never comes from the request body.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTodoService(db *sql.DB, m repomanager.RepositoryManager) *TodoService {
	return &TodoService{db: db, repomanager: m}
}

func (s *TodoService) Create(ctx context.Context, owner, title string, description *string) (*models.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	item, err := s.repomanager.Todos(s.db).Create(ctx, &models.Todo{UserEmail: owner, Title: title, Description: description})
	if err != nil {
		return nil, storeErr(err)
	}
	return item, nil
}

func (s *TodoService) List(ctx context.Context, owner string) ([]*models.Todo, error) {
	items, err := s.repomanager.Todos(s.db).ListByUser(ctx, owner)
	if err != nil {
		return nil, storeErr(err)
	}
	return items, nil
}

// Update merges patch into the stored item. The read and the write run in
// one transaction with the row locked, so concurrent updates do not lose
// fields.
func (s *TodoService) Update(ctx context.Context, owner string, id int64, patch models.TodoPatch) (*models.Todo, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
		}
		patch.Title = &title
	}

	var updated *models.Todo
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Todos(tx)

		current, err := repo.GetForUpdate(ctx, id, owner)
		if err != nil {
			return err
		}

		merged := patch.Apply(*current)
		updated, err = repo.Update(ctx, &merged)
		return err
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return updated, nil
}

func (s *TodoService) Delete(ctx context.Context, owner string, id int64) error {
	if err := s.repomanager.Todos(s.db).Delete(ctx, id, owner); err != nil {
		return storeErr(err)
	}
	return nil
}

// storeErr passes repository sentinels through and wraps anything else in
// common.ErrPersistence.
func storeErr(err error) error {
	switch {
	case errors.Is(err, common.ErrorNotFound),
		errors.Is(err, common.ErrorAlreadyExists),
		errors.Is(err, common.ErrorValidation):
		return err
	default:
		return fmt.Errorf("%w: %w", common.ErrPersistence, err)
	}
}
