package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/pgerrors"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

// paymentColumns колонки платежа вместе с краткими данными записи обслуживания
var paymentColumns = []string{
	"pay.id",
	"pay.user_id",
	"pay.payment_number",
	"pay.amount_paid",
	"pay.payment_date",
	"pay.payment_method",
	"pay.status",
	"pay.service_record_id",
	"pay.created_at",
	"pay.updated_at",
	"sr.record_number",
	"sr.car_id",
	"c.plate_number",
	"c.car_type",
	"c.driver_name",
	"sr.package_id",
	"p.package_name",
	"p.package_price",
}

// Repository репозиторий платежей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет платеж
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"user_id",
			"payment_number",
			"amount_paid",
			"payment_date",
			"payment_method",
			"status",
			"service_record_id",
		).
		Values(
			payment.UserID,
			payment.PaymentNumber,
			payment.AmountPaid,
			payment.PaymentDate,
			payment.PaymentMethod,
			payment.Status,
			payment.ServicePackageID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &createdAt, &updatedAt)
	if err != nil {
		switch {
		case pgerrors.IsUniqueViolation(err):
			return nil, ErrNumberTaken
		case pgerrors.IsForeignKeyViolation(err):
			return nil, ErrBrokenReference
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return payment, nil
}

// GetByID получает платеж с данными записи обслуживания
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectPayments().Where(squirrel.Eq{"pay.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	payment, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %v", ErrScanRow, err)
	}

	return payment, nil
}

// List возвращает платежи владельца (ownerID == nil - все платежи), новые первыми
func (r *Repository) List(ctx context.Context, ownerID *int64) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := selectPayments().OrderBy("pay.payment_date DESC", "pay.id DESC")
	if ownerID != nil {
		builder = builder.Where(squirrel.Eq{"pay.user_id": *ownerID})
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

	payments := make([]*domain.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan payment: %v", ErrScanRow, err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return payments, nil
}

// SumCompleted возвращает сумму завершенных платежей по записи, не считая платежа excludeID
func (r *Repository) SumCompleted(ctx context.Context, recordID int64, excludeID int64) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount_paid), 0)").
		From("payments").
		Where(squirrel.Eq{"service_record_id": recordID, "status": domain.PaymentStatusCompleted}).
		Where(squirrel.NotEq{"id": excludeID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumCompleted - build select query: %v", ErrBuildQuery, err)
	}

	var total float64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumCompleted - scan: %v", ErrScanRow, err)
	}
	return total, nil
}

// MaxCompletedByPackage возвращает наибольшую сумму завершенных платежей
// среди записей обслуживания, оформленных на пакет packageID
func (r *Repository) MaxCompletedByPackage(ctx context.Context, packageID int64) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("SUM(pay.amount_paid) AS total").
		From("payments pay").
		Join("service_records sr ON sr.id = pay.service_record_id").
		Where(squirrel.Eq{"sr.package_id": packageID, "pay.status": domain.PaymentStatusCompleted}).
		GroupBy("pay.service_record_id").
		OrderBy("total DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: MaxCompletedByPackage - build select query: %v", ErrBuildQuery, err)
	}

	var total float64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: MaxCompletedByPackage - scan: %v", ErrScanRow, err)
	}
	return total, nil
}

// UpdateStatus меняет статус платежа
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", status).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// Delete удаляет платеж
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("payments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func selectPayments() squirrel.SelectBuilder {
	return psqlbuilder.Select(paymentColumns...).
		From("payments pay").
		Join("service_records sr ON sr.id = pay.service_record_id").
		Join("cars c ON c.id = sr.car_id").
		Join("packages p ON p.id = sr.package_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var (
		payment              domain.Payment
		summary              domain.ServiceRecordSummary
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&payment.ID,
		&payment.UserID,
		&payment.PaymentNumber,
		&payment.AmountPaid,
		&payment.PaymentDate,
		&payment.PaymentMethod,
		&payment.Status,
		&payment.ServicePackageID,
		&createdAt,
		&updatedAt,
		&summary.RecordNumber,
		&summary.Car.ID,
		&summary.Car.PlateNumber,
		&summary.Car.CarType,
		&summary.Car.DriverName,
		&summary.Package.ID,
		&summary.Package.PackageName,
		&summary.Package.PackagePrice,
	)
	if err != nil {
		return nil, err
	}

	summary.ID = payment.ServicePackageID
	payment.ServicePackage = &summary
	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return &payment, nil
}
