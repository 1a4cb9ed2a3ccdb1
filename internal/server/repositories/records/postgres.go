// Package records provides the PostgreSQL-backed repository for generic
// contact records.
package records

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Record, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, email, age FROM records ORDER BY email`)
	if err != nil {
		return nil, fmt.Errorf("failed to select records: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Record, 0)
	for rows.Next() {
		var rec models.Record
		if err := rows.Scan(&rec.Name, &rec.Email, &rec.Age); err != nil {
			return nil, err
		}
		result = append(result, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, rec *models.Record) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO records (name, email, age) VALUES ($1, $2, $3)`,
		rec.Name, rec.Email, rec.Age)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Update changes the non-nil fields of patch.
func (r *PostgresRepository) Update(ctx context.Context, email string, patch models.RecordPatch) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE records SET name = COALESCE($1, name), age = COALESCE($2, age) WHERE email = $3`,
		patch.Name, patch.Age, email)
	return affectedOne(res, err)
}

func (r *PostgresRepository) Delete(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE email = $1`, email)
	return affectedOne(res, err)
}

func affectedOne(res sql.Result, err error) error {
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
