package reports

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/reports/models"
)

type ReportService interface {
	Daily(ctx context.Context, actor domain.Actor, days int) ([]models.DailyReportResponse, error)
	Summary(ctx context.Context, actor domain.Actor) (*models.SummaryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
