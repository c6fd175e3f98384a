package activities

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// ActivityRepository интерфейс репозитория ленты активности
type ActivityRepository interface {
	Create(ctx context.Context, a *domain.Activity) error
	List(ctx context.Context, ownerID *int64, limit int) ([]*domain.Activity, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
