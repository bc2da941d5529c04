package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"service-logger-backend/internal/model"
)

var (
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateID is returned when appending a record whose id is already taken.
	ErrDuplicateID = errors.New("record id already exists")
)

// Store persists the customer, machine and job tables. Callers check
// foreign keys before appending; the store does not enforce them.
// A single writer per table is assumed.
type Store interface {
	// Append stores rec, assigning a fresh id when it has none, and returns the id.
	Append(ctx context.Context, rec model.Record) (string, error)
	// LoadAll returns every record of a kind in insertion order. A table
	// that was never written is empty, not an error.
	LoadAll(ctx context.Context, kind model.Kind) ([]model.Record, error)
	FindByID(ctx context.Context, kind model.Kind, id string) (model.Record, error)
	// FindByForeignKey returns the records whose column equals value.
	FindByForeignKey(ctx context.Context, kind model.Kind, column, value string) ([]model.Record, error)
	// Update replaces an existing record in place.
	Update(ctx context.Context, rec model.Record) error
}

func assignID(rec model.Record) string {
	if rec.RecordID() == "" {
		rec.SetRecordID(uuid.NewString())
	}
	return rec.RecordID()
}

// LoadAllOf loads a table and converts it to its concrete record type.
func LoadAllOf[T model.Record](ctx context.Context, s Store, kind model.Kind) ([]T, error) {
	recs, err := s.LoadAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	return castAll[T](recs), nil
}

// FindByForeignKeyOf is FindByForeignKey with a typed result.
func FindByForeignKeyOf[T model.Record](ctx context.Context, s Store, kind model.Kind, column, value string) ([]T, error) {
	recs, err := s.FindByForeignKey(ctx, kind, column, value)
	if err != nil {
		return nil, err
	}
	return castAll[T](recs), nil
}

// FindByIDOf is FindByID with a typed result.
func FindByIDOf[T model.Record](ctx context.Context, s Store, kind model.Kind, id string) (T, error) {
	var zero T
	rec, err := s.FindByID(ctx, kind, id)
	if err != nil {
		return zero, err
	}
	out, ok := rec.(T)
	if !ok {
		return zero, ErrNotFound
	}
	return out, nil
}

func castAll[T model.Record](recs []model.Record) []T {
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		if t, ok := r.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
