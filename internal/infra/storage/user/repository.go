package user

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

var userColumns = []string{
	"id",
	"username",
	"email",
	"full_name",
	"profile_image",
	"role",
	"provider",
	"google_id",
	"password_hash",
	"created_at",
	"updated_at",
}

// Repository репозиторий пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пользователей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает пользователя
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns(
			"username",
			"email",
			"full_name",
			"profile_image",
			"role",
			"provider",
			"google_id",
			"password_hash",
		).
		Values(
			user.Username,
			user.Email,
			user.FullName,
			user.ProfileImage,
			user.Role,
			user.Provider,
			user.GoogleID,
			user.PasswordHash,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&user.ID, &createdAt, &updatedAt)
	if err != nil {
		if uniqueErr := uniqueError(err); uniqueErr != nil {
			return nil, uniqueErr
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return user, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUsername получает пользователя по username (без учета регистра)
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "GetByUsername", squirrel.Expr("LOWER(username) = ?", strings.ToLower(username)))
}

// GetByEmail получает пользователя по email (без учета регистра)
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "GetByEmail", squirrel.Expr("LOWER(email) = ?", strings.ToLower(email)))
}

// GetByGoogleID получает пользователя по идентификатору Google аккаунта
func (r *Repository) GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	return r.getOne(ctx, "GetByGoogleID", squirrel.Eq{"google_id": googleID})
}

// UsernameExists проверяет, занят ли username
func (r *Repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("users").
		Where(squirrel.Expr("LOWER(username) = ?", strings.ToLower(username))).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: UsernameExists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: UsernameExists - scan: %v", ErrScanRow, err)
	}
	return true, nil
}

// List возвращает всех пользователей, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan user: %v", ErrScanRow, err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return users, nil
}

// UpdateProfile обновляет заполненные поля профиля
func (r *Repository) UpdateProfile(ctx context.Context, id int64, update domain.ProfileUpdate) (*domain.User, error) {
	builder := psqlbuilder.Update("users").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.Username != nil {
		builder = builder.Set("username", *update.Username)
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}
	if update.FullName != nil {
		builder = builder.Set("full_name", *update.FullName)
	}
	if update.ProfileImage != nil {
		builder = builder.Set("profile_image", *update.ProfileImage)
	}

	return r.updateOne(ctx, "UpdateProfile", builder)
}

// LinkGoogle привязывает Google аккаунт к пользователю
func (r *Repository) LinkGoogle(ctx context.Context, id int64, googleID string) (*domain.User, error) {
	builder := psqlbuilder.Update("users").
		Set("google_id", googleID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.updateOne(ctx, "LinkGoogle", builder)
}

// SetRole меняет роль пользователя
func (r *Repository) SetRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	builder := psqlbuilder.Update("users").
		Set("role", role).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	return r.updateOne(ctx, "SetRole", builder)
}

// Count возвращает общее число пользователей
func (r *Repository) Count(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From("users").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan: %v", ErrScanRow, err)
	}
	return count, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	user, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
	}

	return user, nil
}

func (r *Repository) updateOne(ctx context.Context, op string, builder squirrel.UpdateBuilder) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.Suffix("RETURNING " + strings.Join(userColumns, ", ")).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	user, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		if uniqueErr := uniqueError(err); uniqueErr != nil {
			return nil, uniqueErr
		}
		return nil, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	return user, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		user                 domain.User
		email, fullName      sql.NullString
		profileImage         sql.NullString
		googleID, passwdHash sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&user.ID,
		&user.Username,
		&email,
		&fullName,
		&profileImage,
		&user.Role,
		&user.Provider,
		&googleID,
		&passwdHash,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Email = nullString(email)
	user.FullName = nullString(fullName)
	user.ProfileImage = nullString(profileImage)
	user.GoogleID = nullString(googleID)
	user.PasswordHash = nullString(passwdHash)
	user.CreatedAt = createdAt.Time
	user.UpdatedAt = updatedAt.Time

	return &user, nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

// uniqueError переводит нарушение уникальности в ошибку репозитория
func uniqueError(err error) error {
	if !pgerrors.IsUniqueViolation(err) {
		return nil
	}
	constraint := pgerrors.Constraint(err)
	switch {
	case strings.Contains(constraint, "email"):
		return ErrEmailTaken
	case strings.Contains(constraint, "google"):
		return ErrGoogleIDTaken
	default:
		return ErrUsernameTaken
	}
}
