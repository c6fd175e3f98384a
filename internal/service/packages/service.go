package packages

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	packageRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/washpackage"
	"github.com/m04kA/SMC-CarWashService/internal/service/packages/models"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

// generatedNumberAttempts число попыток подобрать свободный сгенерированный номер
const generatedNumberAttempts = 5

// Service сервис пакетов услуг
type Service struct {
	packageRepo PackageRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	numbers     NumberGenerator
	activities  ActivityRecorder
	validator   *validation.Validator
	logger      Logger
}

// NewService создает новый экземпляр сервиса пакетов
func NewService(
	packageRepo PackageRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	numbers NumberGenerator,
	activities ActivityRecorder,
	logger Logger,
) *Service {
	return &Service{
		packageRepo: packageRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		numbers:     numbers,
		activities:  activities,
		validator:   validation.New(),
		logger:      logger,
	}
}

// List возвращает пакеты, доступные пользователю
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]models.PackageResponse, error) {
	s.logger.Info("List: fetching packages for user=%d, admin=%t", actor.UserID, actor.IsAdmin())

	list, err := s.packageRepo.List(ctx, actor.OwnerScope())
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPackageList(list), nil
}

// ListByOwner возвращает пакеты конкретного пользователя
func (s *Service) ListByOwner(ctx context.Context, userID int64) ([]models.PackageResponse, error) {
	return s.List(ctx, domain.Actor{UserID: userID, Role: domain.RoleUser})
}

// GetByID возвращает пакет с проверкой прав доступа
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.PackageResponse, error) {
	pkg, err := s.get(ctx, "GetByID", actor, id)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainPackage(pkg)
	return &resp, nil
}

// Create создает пакет. Пустой номер генерируется.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.PackageRequest) (*models.PackageResponse, error) {
	normalize(req)
	s.logger.Info("Create: user=%d, name=%q", actor.UserID, req.PackageName)

	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	pkg := &domain.Package{
		UserID:             actor.UserID,
		PackageNumber:      req.PackageNumber,
		PackageName:        req.PackageName,
		PackageDescription: req.PackageDescription,
		PackagePrice:       req.PackagePrice,
	}

	created, err := s.create(ctx, pkg, req.PackageNumber == "")
	if err != nil {
		if errors.Is(err, packageRepo.ErrNumberTaken) {
			s.logger.Warn("Create: package number %s already exists", pkg.PackageNumber)
			return nil, ErrNumberTaken
		}
		s.logger.Error("Create: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.activities.Record(ctx, domain.NewActivity(actor.UserID, domain.ActionPackageCreate,
		"Package created", fmt.Sprintf("Package %s (%s) created", created.PackageName, created.PackageNumber),
		domain.EntityPackage, created.ID))

	s.logger.Info("Create: package id=%d created, number=%s", created.ID, created.PackageNumber)
	resp := models.FromDomainPackage(created)
	return &resp, nil
}

// create сохраняет пакет; сгенерированный номер при коллизии генерируется заново
func (s *Service) create(ctx context.Context, pkg *domain.Package, generate bool) (*domain.Package, error) {
	if !generate {
		return s.packageRepo.Create(ctx, pkg)
	}

	var err error
	for i := 0; i < generatedNumberAttempts; i++ {
		pkg.PackageNumber = s.numbers.PackageNumber()

		var created *domain.Package
		created, err = s.packageRepo.Create(ctx, pkg)
		if !errors.Is(err, packageRepo.ErrNumberTaken) {
			return created, err
		}
	}
	return nil, err
}

// Update изменяет пакет. Пустой номер оставляет прежний.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.PackageRequest) (*models.PackageResponse, error) {
	normalize(req)
	s.logger.Info("Update: package id=%d by user=%d", id, actor.UserID)

	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("Update: validation failed for package id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var updated *domain.Package
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		pkg, err := s.get(txCtx, "Update", actor, id)
		if err != nil {
			return err
		}

		// Снижение цены не должно оставить записи, оплаченные сверх новой цены
		if req.PackagePrice < pkg.PackagePrice {
			paid, err := s.paymentRepo.MaxCompletedByPackage(txCtx, id)
			if err != nil {
				s.logger.Error("Update: failed to sum payments for package id=%d: %v", id, err)
				return fmt.Errorf("%w: Update - sum payments: %v", ErrInternal, err)
			}
			if domain.ExceedsBalance(req.PackagePrice, paid, 0) {
				s.logger.Warn("Update: price %.2f of package id=%d is below paid amount %.2f", req.PackagePrice, id, paid)
				return ErrPriceBelowPaid
			}
		}

		if req.PackageNumber != "" {
			pkg.PackageNumber = req.PackageNumber
		}
		pkg.PackageName = req.PackageName
		pkg.PackageDescription = req.PackageDescription
		pkg.PackagePrice = req.PackagePrice

		updated, err = s.packageRepo.Update(txCtx, pkg)
		if err != nil {
			switch {
			case errors.Is(err, packageRepo.ErrNumberTaken):
				s.logger.Warn("Update: package number %s already exists", pkg.PackageNumber)
				return ErrNumberTaken
			case errors.Is(err, packageRepo.ErrPackageNotFound):
				return ErrPackageNotFound
			}
			s.logger.Error("Update: repository error for package id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activities.Record(ctx, domain.NewActivity(actor.UserID, domain.ActionPackageUpdate,
		"Package updated", fmt.Sprintf("Package %s updated", updated.PackageName), domain.EntityPackage, updated.ID))

	s.logger.Info("Update: package id=%d updated", id)
	resp := models.FromDomainPackage(updated)
	return &resp, nil
}

// Delete удаляет пакет
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Delete: package id=%d by user=%d", id, actor.UserID)

	pkg, err := s.get(ctx, "Delete", actor, id)
	if err != nil {
		return err
	}

	if err := s.packageRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, packageRepo.ErrPackageInUse):
			s.logger.Warn("Delete: package id=%d has service records", id)
			return ErrPackageInUse
		case errors.Is(err, packageRepo.ErrPackageNotFound):
			return ErrPackageNotFound
		}
		s.logger.Error("Delete: repository error for package id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.activities.Record(ctx, domain.NewActivity(actor.UserID, domain.ActionPackageDelete,
		"Package deleted", fmt.Sprintf("Package %s deleted", pkg.PackageName), domain.EntityPackage, id))

	s.logger.Info("Delete: package id=%d deleted", id)
	return nil
}

func (s *Service) get(ctx context.Context, op string, actor domain.Actor, id int64) (*domain.Package, error) {
	pkg, err := s.packageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			s.logger.Warn("%s: package id=%d not found", op, id)
			return nil, ErrPackageNotFound
		}
		s.logger.Error("%s: repository error for package id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !actor.CanAccess(pkg.UserID) {
		s.logger.Warn("%s: access denied for user=%d to package id=%d", op, actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return pkg, nil
}

func normalize(req *models.PackageRequest) {
	req.PackageNumber = strings.ToUpper(strings.TrimSpace(req.PackageNumber))
	req.PackageName = strings.TrimSpace(req.PackageName)
	req.PackageDescription = strings.TrimSpace(req.PackageDescription)
}
