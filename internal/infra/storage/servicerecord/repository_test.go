package servicerecord

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "record_number", "service_date", "car_id", "package_id", "created_at", "updated_at",
		"plate_number", "car_type", "driver_name", "package_name", "package_price", "username",
	})
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO service_records")).
		WithArgs(int64(3), "SRV-2025-0001", date, int64(9), int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(21), now, now))

	record, err := repo.Create(context.Background(), &domain.ServiceRecord{
		UserID:       3,
		RecordNumber: "SRV-2025-0001",
		ServiceDate:  date,
		CarID:        9,
		PackageID:    4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(21), record.ID)
}

func TestRepository_Create_Conflicts(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO service_records")).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO service_records")).
		WillReturnError(&pq.Error{Code: "23503"})

	_, err := repo.Create(context.Background(), &domain.ServiceRecord{UserID: 3})
	assert.ErrorIs(t, err, ErrNumberTaken)

	_, err = repo.Create(context.Background(), &domain.ServiceRecord{UserID: 3})
	assert.ErrorIs(t, err, ErrBrokenReference)
}

func TestRepository_GetByIDForUpdate(t *testing.T) {
	repo, mock := newRepo(t)
	now := time.Now()
	date := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN users u ON u.id = sr.user_id WHERE sr.id = $1 FOR UPDATE OF sr")).
		WithArgs(int64(21)).
		WillReturnRows(recordRows().AddRow(
			int64(21), int64(3), "SRV-2025-0001", date, int64(9), int64(4), now, now,
			"RAB 123A", "Sedan", "John", "Full Wash", 15000.0, "alice",
		))

	record, err := repo.GetByIDForUpdate(context.Background(), 21)
	require.NoError(t, err)
	require.NotNil(t, record.Car)
	require.NotNil(t, record.Package)
	assert.Equal(t, int64(9), record.Car.ID)
	assert.Equal(t, "RAB 123A", record.Car.PlateNumber)
	assert.Equal(t, 15000.0, record.Package.PackagePrice)
	assert.Equal(t, "alice", record.Username)
}

func TestRepository_List_Scoped(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE sr.user_id = $1 ORDER BY sr.service_date DESC, sr.id DESC")).
		WithArgs(int64(3)).
		WillReturnRows(recordRows())

	records, err := repo.List(context.Background(), ptr.Ptr(int64(3)))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE service_records")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM service_records WHERE id = $1")).
		WithArgs(int64(21)).
		WillReturnError(&pq.Error{Code: "23503"})

	err := repo.Update(context.Background(), &domain.ServiceRecord{ID: 99})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete(context.Background(), 21), ErrRecordInUse)
}
