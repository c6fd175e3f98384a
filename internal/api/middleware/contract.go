package middleware

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// Authenticator проверяет сессию по идентификатору из cookie
type Authenticator interface {
	Authenticate(ctx context.Context, sessionID string) (*domain.User, *domain.Session, error)
}

// HTTPMetrics коллектор HTTP метрик
type HTTPMetrics interface {
	IncInFlight()
	DecInFlight()
	ObserveHTTP(method, route string, status int, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
