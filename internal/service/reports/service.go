package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/reports/models"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

// Service сервис отчетов
type Service struct {
	repo   ReportRepository
	logger Logger
	now    func() time.Time
}

// NewService создает новый экземпляр сервиса отчетов
func NewService(repo ReportRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Daily возвращает дневные отчеты за последние days дней, новые первыми
func (s *Service) Daily(ctx context.Context, actor domain.Actor, days int) ([]models.DailyReportResponse, error) {
	if days < domain.MinReportDays || days > domain.MaxReportDays {
		s.logger.Warn("Daily: days=%d out of range", days)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, validation.NewError("days",
			fmt.Sprintf("days must be between %d and %d", domain.MinReportDays, domain.MaxReportDays)))
	}

	end := s.now().UTC()
	endDay := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	// Берем на день больше, чтобы посчитать изменение для самого старого дня
	from := endDay.AddDate(0, 0, -days)

	s.logger.Info("Daily: report for user=%d, admin=%t, %s..%s",
		actor.UserID, actor.IsAdmin(), from.Format(domain.DateFormat), endDay.Format(domain.DateFormat))

	stats, err := s.repo.DailyStats(ctx, actor.OwnerScope(), from, endDay)
	if err != nil {
		s.logger.Error("Daily: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: Daily - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainDailyReports(domain.BuildDailyReports(stats, endDay, days)), nil
}

// Summary возвращает итоговые показатели; число пользователей только для администратора
func (s *Service) Summary(ctx context.Context, actor domain.Actor) (*models.SummaryResponse, error) {
	s.logger.Info("Summary: for user=%d, admin=%t", actor.UserID, actor.IsAdmin())

	summary, err := s.repo.Summary(ctx, actor.OwnerScope())
	if err != nil {
		s.logger.Error("Summary: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: Summary - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainSummary(summary)
	return &resp, nil
}
