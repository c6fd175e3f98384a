package activities

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/activities/models"
)

// Service сервис ленты активности
type Service struct {
	repo   ActivityRepository
	logger Logger
	now    func() time.Time
}

// NewService создает новый экземпляр сервиса активности
func NewService(repo ActivityRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Record сохраняет запись активности.
// Ошибка записи только логируется: действие пользователя уже выполнено.
func (s *Service) Record(ctx context.Context, a *domain.Activity) {
	if a == nil {
		return
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now().UTC()
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("Record: failed to record activity action=%s for user=%d: %v", a.Action, a.UserID, err)
	}
}

// List возвращает последние записи активности.
// Администратор видит записи всех пользователей.
func (s *Service) List(ctx context.Context, actor domain.Actor, limit int) ([]models.ActivityResponse, error) {
	limit = ClampLimit(limit)
	s.logger.Info("List: fetching activities for user=%d, admin=%t, limit=%d", actor.UserID, actor.IsAdmin(), limit)

	list, err := s.repo.List(ctx, actor.OwnerScope(), limit)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainActivityList(list), nil
}

// Prune удаляет записи старше retention. Нулевой retention отключает очистку.
func (s *Service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}

	before := s.now().UTC().Add(-retention)
	deleted, err := s.repo.DeleteOlderThan(ctx, before)
	if err != nil {
		s.logger.Error("Prune: repository error: %v", err)
		return 0, fmt.Errorf("%w: Prune - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Prune: deleted %d activities older than %s", deleted, before.Format(time.RFC3339))
	return deleted, nil
}

// ClampLimit приводит limit к допустимому диапазону
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return domain.DefaultActivityLimit
	case limit > domain.MaxActivityLimit:
		return domain.MaxActivityLimit
	default:
		return limit
	}
}
