package servicerecord

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/pgerrors"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

// recordColumns колонки записи вместе с данными автомобиля, пакета и владельца
var recordColumns = []string{
	"sr.id",
	"sr.user_id",
	"sr.record_number",
	"sr.service_date",
	"sr.car_id",
	"sr.package_id",
	"sr.created_at",
	"sr.updated_at",
	"c.plate_number",
	"c.car_type",
	"c.driver_name",
	"p.package_name",
	"p.package_price",
	"u.username",
}

// Repository репозиторий записей обслуживания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей обслуживания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает запись обслуживания
func (r *Repository) Create(ctx context.Context, record *domain.ServiceRecord) (*domain.ServiceRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_records").
		Columns(
			"user_id",
			"record_number",
			"service_date",
			"car_id",
			"package_id",
		).
		Values(
			record.UserID,
			record.RecordNumber,
			record.ServiceDate,
			record.CarID,
			record.PackageID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&record.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, mapWriteError("Create", err)
	}

	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return record, nil
}

// GetByID получает запись с данными автомобиля, пакета и владельца
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ServiceRecord, error) {
	return r.getOne(ctx, "GetByID", id, false)
}

// GetByIDForUpdate получает запись и блокирует ее до конца транзакции
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.ServiceRecord, error) {
	return r.getOne(ctx, "GetByIDForUpdate", id, true)
}

// List возвращает записи владельца (ownerID == nil - все записи), по дате обслуживания, новые первыми
func (r *Repository) List(ctx context.Context, ownerID *int64) ([]*domain.ServiceRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectRecords().OrderBy("sr.service_date DESC", "sr.id DESC")
	if ownerID != nil {
		builder = builder.Where(squirrel.Eq{"sr.user_id": *ownerID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.ServiceRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan record: %v", ErrScanRow, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return records, nil
}

// Update сохраняет изменения записи
func (r *Repository) Update(ctx context.Context, record *domain.ServiceRecord) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("service_records").
		Set("record_number", record.RecordNumber).
		Set("service_date", record.ServiceDate).
		Set("car_id", record.CarID).
		Set("package_id", record.PackageID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": record.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError("Update", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Delete удаляет запись обслуживания
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("service_records").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return ErrRecordInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, id int64, lock bool) (*domain.ServiceRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectRecords().Where(squirrel.Eq{"sr.id": id})
	if lock {
		builder = builder.Suffix("FOR UPDATE OF sr")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	record, err := scanRecord(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan record: %v", ErrScanRow, op, err)
	}

	return record, nil
}

func selectRecords() squirrel.SelectBuilder {
	return psqlbuilder.Select(recordColumns...).
		From("service_records sr").
		Join("cars c ON c.id = sr.car_id").
		Join("packages p ON p.id = sr.package_id").
		Join("users u ON u.id = sr.user_id")
}

func mapWriteError(op string, err error) error {
	switch {
	case pgerrors.IsUniqueViolation(err):
		return ErrNumberTaken
	case pgerrors.IsForeignKeyViolation(err):
		return ErrBrokenReference
	default:
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*domain.ServiceRecord, error) {
	var (
		record               domain.ServiceRecord
		car                  domain.CarSummary
		pkg                  domain.PackageSummary
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.RecordNumber,
		&record.ServiceDate,
		&record.CarID,
		&record.PackageID,
		&createdAt,
		&updatedAt,
		&car.PlateNumber,
		&car.CarType,
		&car.DriverName,
		&pkg.PackageName,
		&pkg.PackagePrice,
		&record.Username,
	)
	if err != nil {
		return nil, err
	}

	car.ID = record.CarID
	pkg.ID = record.PackageID
	record.Car = &car
	record.Package = &pkg
	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return &record, nil
}
