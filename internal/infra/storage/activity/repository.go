package activity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

var activityColumns = []string{
	"id",
	"user_id",
	"action",
	"title",
	"description",
	"entity_type",
	"entity_id",
	"created_at",
}

// Repository репозиторий ленты активности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория активности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет запись в ленту активности
func (r *Repository) Create(ctx context.Context, a *domain.Activity) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("activities").
		Columns("user_id", "action", "title", "description", "entity_type", "entity_id").
		Values(a.UserID, a.Action, a.Title, a.Description, a.EntityType, a.EntityID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &a.CreatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// List возвращает последние записи (ownerID == nil - всех пользователей)
func (r *Repository) List(ctx context.Context, ownerID *int64, limit int) ([]*domain.Activity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(activityColumns...).
		From("activities").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit))
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

	activities := make([]*domain.Activity, 0, limit)
	for rows.Next() {
		var (
			a          domain.Activity
			entityType sql.NullString
			entityID   sql.NullInt64
		)
		if err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.Action,
			&a.Title,
			&a.Description,
			&entityType,
			&entityID,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: List - scan activity: %v", ErrScanRow, err)
		}
		if entityType.Valid {
			a.EntityType = &entityType.String
		}
		if entityID.Valid {
			a.EntityID = &entityID.Int64
		}
		activities = append(activities, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return activities, nil
}

// DeleteOlderThan удаляет записи, созданные до before
func (r *Repository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("activities").
		Where(squirrel.Lt{"created_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - rows affected: %v", ErrExecQuery, err)
	}
	return affected, nil
}
