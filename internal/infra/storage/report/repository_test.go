package report

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
)

func newRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

func TestRepository_DailyStats_Admin(t *testing.T) {
	repo, mock := newRepo(t)
	from, to := day(8), day(10)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE status = $1 AND payment_date BETWEEN $2 AND $3 GROUP BY payment_date")).
		WithArgs("completed", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"payment_date", "sum"}).
			AddRow(day(8), 100.0).
			AddRow(day(10), 250.0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM service_records WHERE service_date BETWEEN $1 AND $2 GROUP BY service_date")).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"service_date", "count", "count"}).
			AddRow(day(10), 3, 2))
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY sr.service_date, p.package_name ORDER BY sr.service_date, cnt DESC, p.package_name")).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"service_date", "package_name", "cnt"}).
			AddRow(day(10), "Full Wash", 2).
			AddRow(day(10), "Basic", 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE created_at >= $1 AND created_at < $2 GROUP BY DATE(created_at)")).
		WithArgs(from, day(11)).
		WillReturnRows(sqlmock.NewRows([]string{"day", "count"}).AddRow(day(9), 4))

	stats, err := repo.DailyStats(context.Background(), nil, from, to)
	require.NoError(t, err)
	require.Len(t, stats, 3)

	assert.Equal(t, day(8), stats[0].Date)
	assert.Equal(t, 100.0, stats[0].Revenue)
	assert.Equal(t, 4, stats[1].NewCustomers)
	assert.Equal(t, 3, stats[2].Services)
	assert.Equal(t, 2, stats[2].Cars)
	assert.Equal(t, "Full Wash", stats[2].PopularPackage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_DailyStats_ScopedSkipsCustomers(t *testing.T) {
	repo, mock := newRepo(t)
	from, to := day(9), day(10)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments")).
		WithArgs("completed", from, to, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"payment_date", "sum"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM service_records")).
		WithArgs(from, to, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"service_date", "count", "count"}))
	mock.ExpectQuery(regexp.QuoteMeta("FROM service_records sr JOIN packages p")).
		WithArgs(from, to, int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"service_date", "package_name", "cnt"}))

	stats, err := repo.DailyStats(context.Background(), ptr.Ptr(int64(3)), from, to)
	require.NoError(t, err)
	assert.Empty(t, stats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Summary(t *testing.T) {
	repo, mock := newRepo(t)

	for _, n := range []int{5, 3, 12, 10} {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM")).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(n))
	}
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(amount_paid), 0) FROM payments")).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(98000.0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM users")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	summary, err := repo.Summary(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 5, summary.TotalCars)
	assert.Equal(t, 3, summary.TotalPackages)
	assert.Equal(t, 12, summary.TotalServices)
	assert.Equal(t, 10, summary.TotalPayments)
	assert.Equal(t, 98000.0, summary.TotalRevenue)
	require.NotNil(t, summary.TotalUsers)
	assert.Equal(t, 7, *summary.TotalUsers)
}
