package car

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/pgerrors"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

var carColumns = []string{
	"id",
	"user_id",
	"plate_number",
	"car_type",
	"car_size",
	"driver_name",
	"phone_number",
	"image",
	"created_at",
	"updated_at",
}

// Repository репозиторий автомобилей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория автомобилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует автомобиль
func (r *Repository) Create(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("cars").
		Columns(
			"user_id",
			"plate_number",
			"car_type",
			"car_size",
			"driver_name",
			"phone_number",
			"image",
		).
		Values(
			car.UserID,
			car.PlateNumber,
			car.CarType,
			car.CarSize,
			car.DriverName,
			car.PhoneNumber,
			car.Image,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&car.ID, &createdAt, &updatedAt)
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrPlateTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	car.CreatedAt = createdAt.Time
	car.UpdatedAt = updatedAt.Time

	return car, nil
}

// GetByID получает автомобиль по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(carColumns...).
		From("cars").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	car, err := scanCar(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan car: %v", ErrScanRow, err)
	}

	return car, nil
}

// List возвращает автомобили владельца (ownerID == nil - все автомобили), новые первыми
func (r *Repository) List(ctx context.Context, ownerID *int64) ([]*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(carColumns...).
		From("cars").
		OrderBy("created_at DESC", "id DESC")
	if ownerID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *ownerID})
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

	cars := make([]*domain.Car, 0)
	for rows.Next() {
		car, err := scanCar(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan car: %v", ErrScanRow, err)
		}
		cars = append(cars, car)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return cars, nil
}

// Update сохраняет изменения автомобиля
func (r *Repository) Update(ctx context.Context, car *domain.Car) (*domain.Car, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("cars").
		Set("plate_number", car.PlateNumber).
		Set("car_type", car.CarType).
		Set("car_size", car.CarSize).
		Set("driver_name", car.DriverName).
		Set("phone_number", car.PhoneNumber).
		Set("image", car.Image).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": car.ID}).
		Suffix("RETURNING " + strings.Join(carColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	updated, err := scanCar(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarNotFound
	}
	if err != nil {
		if pgerrors.IsUniqueViolation(err) {
			return nil, ErrPlateTaken
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updated, nil
}

// Delete удаляет автомобиль
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("cars").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerrors.IsForeignKeyViolation(err) {
			return ErrCarInUse
		}
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrCarNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCar(row rowScanner) (*domain.Car, error) {
	var (
		car                  domain.Car
		image                sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&car.ID,
		&car.UserID,
		&car.PlateNumber,
		&car.CarType,
		&car.CarSize,
		&car.DriverName,
		&car.PhoneNumber,
		&image,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if image.Valid {
		car.Image = &image.String
	}
	car.CreatedAt = createdAt.Time
	car.UpdatedAt = updatedAt.Time

	return &car, nil
}
