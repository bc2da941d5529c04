package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"service-logger-backend/internal/model"
)

// foreignKeys maps header names to database columns.
var foreignKeys = map[string]string{
	model.ColCustomerID: "customer_id",
	model.ColMachineID:  "machine_id",
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Append(ctx context.Context, rec model.Record) (string, error) {
	id := assignID(rec)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(rec).Where("id = ?", id).Count(&n).Error; err != nil {
			return fmt.Errorf("failed to check %s id %s: %w", rec.Kind(), id, err)
		}
		if n > 0 {
			return fmt.Errorf("%w: %s %s", ErrDuplicateID, rec.Kind(), id)
		}
		if err := tx.Create(rec).Error; err != nil {
			return fmt.Errorf("failed to insert %s %s: %w", rec.Kind(), id, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *gormStore) LoadAll(ctx context.Context, kind model.Kind) ([]model.Record, error) {
	return s.find(ctx, kind, s.db.WithContext(ctx))
}

func (s *gormStore) FindByID(ctx context.Context, kind model.Kind, id string) (model.Record, error) {
	recs, err := s.find(ctx, kind, s.db.WithContext(ctx).Where("id = ?", id).Limit(1))
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	return recs[0], nil
}

func (s *gormStore) FindByForeignKey(ctx context.Context, kind model.Kind, column, value string) ([]model.Record, error) {
	dbColumn, ok := foreignKeys[column]
	if !ok || !hasColumn(kind, column) {
		return nil, fmt.Errorf("table %s has no column %q", kind, column)
	}
	return s.find(ctx, kind, s.db.WithContext(ctx).Where(dbColumn+" = ?", value))
}

func (s *gormStore) Update(ctx context.Context, rec model.Record) error {
	res := s.db.WithContext(ctx).Model(rec).Select("*").Omit("id", "created_at").Updates(rec)
	if res.Error != nil {
		return fmt.Errorf("failed to update %s %s: %w", rec.Kind(), rec.RecordID(), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, rec.Kind(), rec.RecordID())
	}
	return nil
}

func (s *gormStore) find(_ context.Context, kind model.Kind, q *gorm.DB) ([]model.Record, error) {
	q = q.Order("created_at")
	var (
		recs []model.Record
		err  error
	)
	switch kind {
	case model.KindCustomer:
		recs, err = findAll[model.Customer](q)
	case model.KindMachine:
		recs, err = findAll[model.Machine](q)
	case model.KindJob:
		recs, err = findAll[model.Job](q)
	default:
		return nil, fmt.Errorf("unknown record kind %q", kind)
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to query %s: %w", kind, err)
	}
	return recs, nil
}

func findAll[T any, P interface {
	*T
	model.Record
}](q *gorm.DB) ([]model.Record, error) {
	var rows []T
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]model.Record, len(rows))
	for i := range rows {
		out[i] = P(&rows[i])
	}
	return out, nil
}
