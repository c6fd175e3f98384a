package reports

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// ReportRepository интерфейс репозитория отчетов
type ReportRepository interface {
	DailyStats(ctx context.Context, ownerID *int64, from, to time.Time) ([]domain.DailyStats, error)
	Summary(ctx context.Context, ownerID *int64) (*domain.Summary, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
