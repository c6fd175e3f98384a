package users

import (
	"context"
	"errors"
	"fmt"

	userRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/user"
	authModels "github.com/m04kA/SMC-CarWashService/internal/service/auth/models"
	"github.com/m04kA/SMC-CarWashService/internal/service/users/models"
)

// Service сервис администрирования пользователей
type Service struct {
	userRepo UserRepository
	cars     CarLister
	packages PackageLister
	records  RecordLister
	payments PaymentLister
	sessions SessionLister
	logger   Logger
}

// NewService создает новый экземпляр сервиса
func NewService(
	userRepo UserRepository,
	cars CarLister,
	packages PackageLister,
	records RecordLister,
	payments PaymentLister,
	sessions SessionLister,
	logger Logger,
) *Service {
	return &Service{
		userRepo: userRepo,
		cars:     cars,
		packages: packages,
		records:  records,
		payments: payments,
		sessions: sessions,
		logger:   logger,
	}
}

// List возвращает всех пользователей, новые первыми
func (s *Service) List(ctx context.Context) ([]authModels.UserResponse, error) {
	list, err := s.userRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: found %d users", len(list))
	return authModels.FromDomainUserList(list), nil
}

// Details собирает профиль пользователя вместе со всеми его данными
func (s *Service) Details(ctx context.Context, userID int64) (*models.UserDetailsResponse, error) {
	s.logger.Info("Details: collecting data for user=%d", userID)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Details: user id=%d not found", userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("Details: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Details - repository error: %v", ErrInternal, err)
	}

	resp := &models.UserDetailsResponse{User: authModels.FromDomainUser(user)}

	if resp.Cars, err = s.cars.ListByOwner(ctx, userID); err != nil {
		return nil, s.internal("cars", userID, err)
	}
	if resp.Packages, err = s.packages.ListByOwner(ctx, userID); err != nil {
		return nil, s.internal("packages", userID, err)
	}
	if resp.Services, err = s.records.ListByOwner(ctx, userID); err != nil {
		return nil, s.internal("services", userID, err)
	}
	if resp.Payments, err = s.payments.ListByOwner(ctx, userID); err != nil {
		return nil, s.internal("payments", userID, err)
	}
	if resp.Sessions, err = s.sessions.ListForUser(ctx, userID); err != nil {
		return nil, s.internal("sessions", userID, err)
	}

	return resp, nil
}

func (s *Service) internal(what string, userID int64, err error) error {
	s.logger.Error("Details: failed to list %s for user=%d: %v", what, userID, err)
	return fmt.Errorf("%w: Details - list %s: %v", ErrInternal, what, err)
}
