package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

// Repository агрегирующие запросы для отчетов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория отчетов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// DailyStats собирает дневные показатели за период [from, to] включительно.
// ownerID == nil - по всем пользователям; новые клиенты считаются только в этом случае.
func (r *Repository) DailyStats(ctx context.Context, ownerID *int64, from, to time.Time) ([]domain.DailyStats, error) {
	byDay := make(map[string]*domain.DailyStats)
	day := func(t time.Time) *domain.DailyStats {
		key := t.Format(domain.DateFormat)
		s, ok := byDay[key]
		if !ok {
			s = &domain.DailyStats{Date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
			byDay[key] = s
		}
		return s
	}

	if err := r.revenueByDay(ctx, ownerID, from, to, day); err != nil {
		return nil, err
	}
	if err := r.servicesByDay(ctx, ownerID, from, to, day); err != nil {
		return nil, err
	}
	if err := r.popularByDay(ctx, ownerID, from, to, day); err != nil {
		return nil, err
	}
	if ownerID == nil {
		if err := r.newCustomersByDay(ctx, from, to, day); err != nil {
			return nil, err
		}
	}

	stats := make([]domain.DailyStats, 0, len(byDay))
	for _, s := range byDay {
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Date.Before(stats[j].Date) })

	return stats, nil
}

// Summary считает итоговые показатели для дашборда
func (r *Repository) Summary(ctx context.Context, ownerID *int64) (*domain.Summary, error) {
	var (
		summary domain.Summary
		err     error
	)

	if summary.TotalCars, err = r.count(ctx, "cars", ownerID); err != nil {
		return nil, err
	}
	if summary.TotalPackages, err = r.count(ctx, "packages", ownerID); err != nil {
		return nil, err
	}
	if summary.TotalServices, err = r.count(ctx, "service_records", ownerID); err != nil {
		return nil, err
	}
	if summary.TotalPayments, err = r.count(ctx, "payments", ownerID); err != nil {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	builder := psqlbuilder.Select("COALESCE(SUM(amount_paid), 0)").
		From("payments").
		Where(squirrel.Eq{"status": domain.PaymentStatusCompleted})
	if ownerID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *ownerID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Summary - build revenue query: %v", ErrBuildQuery, err)
	}
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&summary.TotalRevenue); err != nil {
		return nil, fmt.Errorf("%w: Summary - scan revenue: %v", ErrScanRow, err)
	}

	if ownerID == nil {
		users, err := r.count(ctx, "users", nil)
		if err != nil {
			return nil, err
		}
		summary.TotalUsers = &users
	}

	return &summary, nil
}

func (r *Repository) count(ctx context.Context, table string, ownerID *int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("COUNT(*)").From(table)
	if ownerID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *ownerID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: count %s - build query: %v", ErrBuildQuery, table, err)
	}

	var n int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: count %s - scan: %v", ErrScanRow, table, err)
	}
	return n, nil
}

func (r *Repository) revenueByDay(ctx context.Context, ownerID *int64, from, to time.Time, day func(time.Time) *domain.DailyStats) error {
	builder := psqlbuilder.Select("payment_date", "COALESCE(SUM(amount_paid), 0)").
		From("payments").
		Where(squirrel.Eq{"status": domain.PaymentStatusCompleted}).
		Where(squirrel.Expr("payment_date BETWEEN ? AND ?", from, to)).
		GroupBy("payment_date")
	if ownerID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *ownerID})
	}

	return r.scanEach(ctx, "revenueByDay", builder, func(scan func(dest ...interface{}) error) error {
		var (
			date    time.Time
			revenue float64
		)
		if err := scan(&date, &revenue); err != nil {
			return err
		}
		day(date).Revenue = revenue
		return nil
	})
}

func (r *Repository) servicesByDay(ctx context.Context, ownerID *int64, from, to time.Time, day func(time.Time) *domain.DailyStats) error {
	builder := psqlbuilder.Select("service_date", "COUNT(*)", "COUNT(DISTINCT car_id)").
		From("service_records").
		Where(squirrel.Expr("service_date BETWEEN ? AND ?", from, to)).
		GroupBy("service_date")
	if ownerID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *ownerID})
	}

	return r.scanEach(ctx, "servicesByDay", builder, func(scan func(dest ...interface{}) error) error {
		var (
			date           time.Time
			services, cars int
		)
		if err := scan(&date, &services, &cars); err != nil {
			return err
		}
		s := day(date)
		s.Services = services
		s.Cars = cars
		return nil
	})
}

// popularByDay выбирает пакет с наибольшим числом обслуживаний за день (при равенстве - по имени)
func (r *Repository) popularByDay(ctx context.Context, ownerID *int64, from, to time.Time, day func(time.Time) *domain.DailyStats) error {
	builder := psqlbuilder.Select("sr.service_date", "p.package_name", "COUNT(*) AS cnt").
		From("service_records sr").
		Join("packages p ON p.id = sr.package_id").
		Where(squirrel.Expr("sr.service_date BETWEEN ? AND ?", from, to)).
		GroupBy("sr.service_date", "p.package_name").
		OrderBy("sr.service_date", "cnt DESC", "p.package_name")
	if ownerID != nil {
		builder = builder.Where(squirrel.Eq{"sr.user_id": *ownerID})
	}

	return r.scanEach(ctx, "popularByDay", builder, func(scan func(dest ...interface{}) error) error {
		var (
			date  time.Time
			name  string
			count int
		)
		if err := scan(&date, &name, &count); err != nil {
			return err
		}
		if s := day(date); s.PopularPackage == "" {
			s.PopularPackage = name
		}
		return nil
	})
}

func (r *Repository) newCustomersByDay(ctx context.Context, from, to time.Time, day func(time.Time) *domain.DailyStats) error {
	builder := psqlbuilder.Select("DATE(created_at) AS day", "COUNT(*)").
		From("users").
		Where(squirrel.GtOrEq{"created_at": from}).
		Where(squirrel.Lt{"created_at": to.AddDate(0, 0, 1)}).
		GroupBy("DATE(created_at)")

	return r.scanEach(ctx, "newCustomersByDay", builder, func(scan func(dest ...interface{}) error) error {
		var (
			date  time.Time
			count int
		)
		if err := scan(&date, &count); err != nil {
			return err
		}
		day(date).NewCustomers = count
		return nil
	})
}

func (r *Repository) scanEach(
	ctx context.Context,
	op string,
	builder squirrel.SelectBuilder,
	fn func(scan func(dest ...interface{}) error) error,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute select: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := fn(rows.Scan); err != nil {
			return fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %s - rows iteration: %v", ErrScanRow, op, err)
	}
	return nil
}
