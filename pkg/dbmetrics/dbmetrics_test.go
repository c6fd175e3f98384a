package dbmetrics

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCollector struct {
	mu         sync.Mutex
	operations []string
	errors     int
}

func (c *recordingCollector) ObserveDBQuery(operation string, _ time.Duration, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.operations = append(c.operations, operation)
	if err != nil {
		c.errors++
	}
}

func (c *recordingCollector) SetDBStats(sql.DBStats) {}

func TestDB_RecordsOperations(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	collector := &recordingCollector{}
	db := Wrap(sqlDB, collector)

	mock.ExpectExec("DELETE FROM cars").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM cars").WillReturnError(errors.New("boom"))

	_, err = db.ExecContext(context.Background(), "DELETE FROM cars WHERE id = $1", 1)
	require.NoError(t, err)

	_, err = db.QueryContext(context.Background(), "SELECT id FROM cars")
	require.Error(t, err)

	assert.Equal(t, []string{"delete", "select"}, collector.operations)
	assert.Equal(t, 1, collector.errors)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Equal(t, DBExecutor(db), GetExecutor(ctx, db))

	mock.ExpectBegin()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, DBExecutor(tx), GetExecutor(txCtx, db))

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "insert", operation("  INSERT INTO cars (plate_number) VALUES ($1)"))
	assert.Equal(t, "unknown", operation(""))
}
