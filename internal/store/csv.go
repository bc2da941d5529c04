package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"service-logger-backend/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// csvStore keeps each table in <dir>/<kind>.csv. Every write loads the whole
// table, changes it in memory and writes the full snapshot back.
type csvStore struct {
	dir    string
	logger *zap.Logger
}

// NewCSVStore creates a CSV-backed store rooted at dir.
func NewCSVStore(dir string, logger *zap.Logger) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &csvStore{dir: dir, logger: logger}, nil
}

// TablePath returns the file holding a table.
func TablePath(dir string, kind model.Kind) string {
	return filepath.Join(dir, string(kind)+".csv")
}

func (s *csvStore) Append(ctx context.Context, rec model.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	recs, err := s.readTable(rec.Kind())
	if err != nil {
		return "", err
	}
	id := assignID(rec)
	for _, r := range recs {
		if r.RecordID() == id {
			return "", fmt.Errorf("%w: %s %s", ErrDuplicateID, rec.Kind(), id)
		}
	}
	if err := s.writeTable(rec.Kind(), append(recs, rec)); err != nil {
		return "", err
	}
	return id, nil
}

func (s *csvStore) LoadAll(ctx context.Context, kind model.Kind) ([]model.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.readTable(kind)
}

func (s *csvStore) FindByID(ctx context.Context, kind model.Kind, id string) (model.Record, error) {
	recs, err := s.LoadAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	for _, r := range recs {
		if r.RecordID() == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

func (s *csvStore) FindByForeignKey(ctx context.Context, kind model.Kind, column, value string) ([]model.Record, error) {
	recs, err := s.LoadAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	if !hasColumn(kind, column) {
		return nil, fmt.Errorf("table %s has no column %q", kind, column)
	}
	var out []model.Record
	for _, r := range recs {
		if r.Field(column) == value {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *csvStore) Update(ctx context.Context, rec model.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	recs, err := s.readTable(rec.Kind())
	if err != nil {
		return err
	}
	for i, r := range recs {
		if r.RecordID() == rec.RecordID() {
			recs[i] = rec
			return s.writeTable(rec.Kind(), recs)
		}
	}
	return fmt.Errorf("%w: %s %s", ErrNotFound, rec.Kind(), rec.RecordID())
}

func (s *csvStore) readTable(kind model.Kind) ([]model.Record, error) {
	if _, err := model.New(kind); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(TablePath(s.dir, kind))
	if errors.Is(err, os.ErrNotExist) {
		return []model.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s table: %w", kind, err)
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, utf8BOM)))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []model.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s header: %w", kind, err)
	}

	recs := []model.Record{}
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s line %d: %w", kind, line, err)
		}
		values := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				values[col] = row[i]
			}
		}
		rec, err := model.FromRow(kind, values)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s line %d: %w", kind, line, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *csvStore) writeTable(kind model.Kind, recs []model.Record) error {
	tmp, err := os.CreateTemp(s.dir, string(kind)+"-*.csv.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", kind, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(model.Columns(kind)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s header: %w", kind, err)
	}
	for _, rec := range recs {
		if err := w.Write(rec.Row()); err != nil {
			tmp.Close()
			return fmt.Errorf("failed to write %s row %s: %w", kind, rec.RecordID(), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush %s table: %w", kind, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s table: %w", kind, err)
	}
	if err := os.Rename(tmp.Name(), TablePath(s.dir, kind)); err != nil {
		return fmt.Errorf("failed to replace %s table: %w", kind, err)
	}
	s.logger.Debug("table written", zap.String("table", string(kind)), zap.Int("rows", len(recs)))
	return nil
}

func hasColumn(kind model.Kind, column string) bool {
	for _, c := range model.Columns(kind) {
		if c == column {
			return true
		}
	}
	return false
}
