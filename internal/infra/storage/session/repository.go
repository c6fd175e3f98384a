package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashService/pkg/psqlbuilder"
)

var sessionColumns = []string{
	"id",
	"session_id",
	"user_id",
	"ip",
	"location",
	"user_agent",
	"device",
	"platform",
	"browser",
	"created_at",
	"last_active",
	"expires_at",
	"revoked_at",
}

// validSessionID колонка session_id имеет тип UUID, иначе postgres вернет 22P02
func validSessionID(sessionID string) bool {
	_, err := uuid.Parse(sessionID)
	return err == nil
}

// Repository репозиторий сессий пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новую сессию
func (r *Repository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"session_id",
			"user_id",
			"ip",
			"location",
			"user_agent",
			"device",
			"platform",
			"browser",
			"created_at",
			"last_active",
			"expires_at",
		).
		Values(
			s.SessionID,
			s.UserID,
			s.IP,
			s.Location,
			s.UserAgent,
			s.Device,
			s.Platform,
			s.Browser,
			s.CreatedAt,
			s.LastActive,
			s.ExpiresAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// GetBySessionID получает сессию по публичному идентификатору
func (r *Repository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Session, error) {
	if !validSessionID(sessionID) {
		return nil, ErrSessionNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySessionID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSession(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySessionID - scan session: %v", ErrScanRow, err)
	}

	return s, nil
}

// ListActiveByUser возвращает активные сессии пользователя, последние активные первыми
func (r *Repository) ListActiveByUser(ctx context.Context, userID int64, now time.Time) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"user_id": userID, "revoked_at": nil}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("last_active DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByUser - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveByUser - scan session: %v", ErrScanRow, err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByUser - rows iteration: %v", ErrScanRow, err)
	}

	return sessions, nil
}

// Touch обновляет время последней активности
func (r *Repository) Touch(ctx context.Context, sessionID string, at time.Time) error {
	if !validSessionID(sessionID) {
		return ErrSessionNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("last_active", at).
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Touch - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Touch - execute update: %v", ErrExecQuery, err)
	}
	return nil
}

// Revoke отзывает одну активную сессию пользователя
func (r *Repository) Revoke(ctx context.Context, userID int64, sessionID string, at time.Time) error {
	if !validSessionID(sessionID) {
		return ErrSessionNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("revoked_at", at).
		Where(squirrel.Eq{"session_id": sessionID, "user_id": userID, "revoked_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Revoke - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Revoke - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Revoke - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// RevokeAll отзывает все активные сессии пользователя и возвращает их количество
func (r *Repository) RevokeAll(ctx context.Context, userID int64, at time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("revoked_at", at).
		Where(squirrel.Eq{"user_id": userID, "revoked_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: RevokeAll - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: RevokeAll - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: RevokeAll - rows affected: %v", ErrExecQuery, err)
	}
	return affected, nil
}

// PurgeStale удаляет сессии, истекшие или отозванные до before
func (r *Repository) PurgeStale(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("sessions").
		Where(squirrel.Or{
			squirrel.Lt{"expires_at": before},
			squirrel.Lt{"revoked_at": before},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeStale - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeStale - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: PurgeStale - rows affected: %v", ErrExecQuery, err)
	}
	return affected, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		s         domain.Session
		location  sql.NullString
		revokedAt sql.NullTime
	)

	err := row.Scan(
		&s.ID,
		&s.SessionID,
		&s.UserID,
		&s.IP,
		&location,
		&s.UserAgent,
		&s.Device,
		&s.Platform,
		&s.Browser,
		&s.CreatedAt,
		&s.LastActive,
		&s.ExpiresAt,
		&revokedAt,
	)
	if err != nil {
		return nil, err
	}

	if location.Valid {
		s.Location = &location.String
	}
	if revokedAt.Valid {
		s.RevokedAt = &revokedAt.Time
	}

	return &s, nil
}
