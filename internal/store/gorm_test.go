package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"service-logger-backend/internal/db"
	"service-logger-backend/internal/model"
)

// A helper function to create a mock database connection.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

func newSQLiteStore(t *testing.T) Store {
	gormDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	return NewGormStore(gormDB)
}

func TestGormStore_FindByForeignKey(t *testing.T) {
	testCases := []struct {
		name             string
		column           string
		mockExpectations func(mock sqlmock.Sqlmock)
		expectedIDs      []string
		expectedErr      bool
	}{
		{
			name:   "machines of a customer",
			column: model.ColCustomerID,
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "machines" WHERE customer_id = $1 ORDER BY created_at`)).
					WithArgs("c1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "brand", "model", "year"}).
						AddRow("m1", "c1", "Gaggia", "Classic", "2005").
						AddRow("m2", "c1", "Jura", "Giga X8", "2021"))
			},
			expectedIDs: []string{"m1", "m2"},
		},
		{
			name:   "database failure is wrapped",
			column: model.ColCustomerID,
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "machines"`)).
					WillReturnError(errors.New("connection reset"))
			},
			expectedErr: true,
		},
		{
			name:             "column not in table, no query issued",
			column:           model.ColMachineID,
			mockExpectations: func(mock sqlmock.Sqlmock) {},
			expectedErr:      true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gormDB, mock := newMockDB(t)
			tc.mockExpectations(mock)

			recs, err := NewGormStore(gormDB).FindByForeignKey(context.Background(), model.KindMachine, tc.column, "c1")
			if tc.expectedErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				var ids []string
				for _, r := range recs {
					ids = append(ids, r.RecordID())
				}
				assert.Equal(t, tc.expectedIDs, ids)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGormStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	customer := &model.Customer{CompanyName: "Bean There", Address: "12 King St W, Toronto"}
	cid, err := s.Append(ctx, customer)
	require.NoError(t, err)

	machine := &model.Machine{CustomerID: cid, Brand: "Rancilio", Model: "Classe 9", Year: "2019"}
	mid, err := s.Append(ctx, machine)
	require.NoError(t, err)

	job := sampleJob(cid, mid)
	jid, err := s.Append(ctx, job)
	require.NoError(t, err)

	gotJob, err := FindByIDOf[*model.Job](ctx, s, model.KindJob, jid)
	require.NoError(t, err)
	assert.Equal(t, job.Row(), gotJob.Row())

	machines, err := FindByForeignKeyOf[*model.Machine](ctx, s, model.KindMachine, model.ColCustomerID, cid)
	require.NoError(t, err)
	require.Len(t, machines, 1)
	assert.Equal(t, machine.Row(), machines[0].Row())

	_, err = s.Append(ctx, &model.Customer{ID: cid})
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = s.FindByID(ctx, model.KindCustomer, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_UpdateMachine(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	_, err := s.Append(ctx, &model.Machine{ID: "m1", CustomerID: "c1", Brand: "Gaggia", Model: "Classic", Year: "2005"})
	require.NoError(t, err)

	m, err := FindByIDOf[*model.Machine](ctx, s, model.KindMachine, "m1")
	require.NoError(t, err)
	m.SerialNumber = ""
	m.Observations = "Pump noisy"
	require.NoError(t, s.Update(ctx, m))

	got, err := FindByIDOf[*model.Machine](ctx, s, model.KindMachine, "m1")
	require.NoError(t, err)
	assert.Equal(t, "Pump noisy", got.Observations)
	assert.False(t, got.CreatedAt.IsZero())

	assert.ErrorIs(t, s.Update(ctx, &model.Machine{ID: "nope", Brand: "x"}), ErrNotFound)
}

func TestGormStore_LoadAllEmpty(t *testing.T) {
	s := newSQLiteStore(t)
	recs, err := s.LoadAll(context.Background(), model.KindJob)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
