package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
)

// RecordService is the CRUD surface for generic records.
type RecordService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewRecordService(db *sql.DB, m repomanager.RepositoryManager) *RecordService {
	return &RecordService{db: db, repomanager: m}
}

func (s *RecordService) List(ctx context.Context) ([]*models.Record, error) {
	recs, err := s.repomanager.Records(s.db).List(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return recs, nil
}

func (s *RecordService) Create(ctx context.Context, rec models.Record) error {
	rec.Name = strings.TrimSpace(rec.Name)
	rec.Email = strings.TrimSpace(rec.Email)
	if rec.Name == "" || rec.Email == "" {
		return fmt.Errorf("%w: name and email are required", common.ErrorValidation)
	}
	if rec.Age < 0 {
		return fmt.Errorf("%w: age must not be negative", common.ErrorValidation)
	}

	if err := s.repomanager.Records(s.db).Create(ctx, &rec); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *RecordService) Update(ctx context.Context, email string, patch models.RecordPatch) error {
	if patch.Name == nil && patch.Age == nil {
		return fmt.Errorf("%w: nothing to update", common.ErrorValidation)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("%w: name must not be empty", common.ErrorValidation)
	}
	if patch.Age != nil && *patch.Age < 0 {
		return fmt.Errorf("%w: age must not be negative", common.ErrorValidation)
	}

	if err := s.repomanager.Records(s.db).Update(ctx, email, patch); err != nil {
		return storeErr(err)
	}
	return nil
}

func (s *RecordService) Delete(ctx context.Context, email string) error {
	if err := s.repomanager.Records(s.db).Delete(ctx, email); err != nil {
		return storeErr(err)
	}
	return nil
}
