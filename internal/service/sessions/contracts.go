package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) (*domain.Session, error)
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Session, error)
	ListActiveByUser(ctx context.Context, userID int64, now time.Time) ([]*domain.Session, error)
	Touch(ctx context.Context, sessionID string, at time.Time) error
	Revoke(ctx context.Context, userID int64, sessionID string, at time.Time) error
	RevokeAll(ctx context.Context, userID int64, at time.Time) (int64, error)
	PurgeStale(ctx context.Context, before time.Time) (int64, error)
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ActivityRecorder записывает события в ленту активности
type ActivityRecorder interface {
	Record(ctx context.Context, a *domain.Activity)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
