package jobs

import (
	"context"
	"time"
)

// SessionPurger удаляет давно истекшие и отозванные сессии
type SessionPurger interface {
	Purge(ctx context.Context) (int64, error)
}

// ActivityPruner удаляет старые записи журнала активности
type ActivityPruner interface {
	Prune(ctx context.Context, retention time.Duration) (int64, error)
}

// VisitorCleaner забывает неактивных клиентов ограничителя частоты запросов
type VisitorCleaner interface {
	Cleanup(idle time.Duration) int
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
