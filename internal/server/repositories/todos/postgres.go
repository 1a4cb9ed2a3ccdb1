// Package todos provides the PostgreSQL-backed repository for to-do items.
package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

const todoColumns = `id, user_email, title, description, completed, created_at`

// PostgresRepository implements todo storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (*models.Todo, error) {
	var (
		item models.Todo
		desc sql.NullString
	)
	if err := s.Scan(&item.ID, &item.UserEmail, &item.Title, &desc, &item.Completed, &item.CreatedAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		item.Description = &desc.String
	}
	return &item, nil
}

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query := `INSERT INTO todo_items (user_email, title, description)
		VALUES ($1, $2, $3)
		RETURNING ` + todoColumns

	item, err := scanTodo(r.db.QueryRowContext(ctx, query, todo.UserEmail, todo.Title, todo.Description))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

// ListByUser returns the owner's items, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, email string) ([]*models.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todo_items
		WHERE user_email = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to select todos: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Todo, 0)
	for rows.Next() {
		item, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetForUpdate reads one item and locks its row until the surrounding
// transaction ends. Outside a transaction the lock is released immediately.
func (r *PostgresRepository) GetForUpdate(ctx context.Context, id int64, email string) (*models.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todo_items
		WHERE id = $1 AND user_email = $2
		FOR UPDATE`

	item, err := scanTodo(r.db.QueryRowContext(ctx, query, id, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query := `UPDATE todo_items SET title = $1, description = $2, completed = $3
		WHERE id = $4 AND user_email = $5
		RETURNING ` + todoColumns

	item, err := scanTodo(r.db.QueryRowContext(ctx, query,
		todo.Title, todo.Description, todo.Completed, todo.ID, todo.UserEmail))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return item, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64, email string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todo_items WHERE id = $1 AND user_email = $2`, id, email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
