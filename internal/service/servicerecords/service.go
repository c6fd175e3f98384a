package servicerecords

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	carRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/car"
	recordRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/servicerecord"
	packageRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/washpackage"
	"github.com/m04kA/SMC-CarWashService/internal/service/servicerecords/models"
)

// Service сервис записей обслуживания.
// Создание записи выполняется в usecase create_service_record.
type Service struct {
	recordRepo  RecordRepository
	paymentRepo PaymentRepository
	carRepo     CarRepository
	packageRepo PackageRepository
	txManager   TransactionManager
	activities  ActivityRecorder
	logger      Logger
	now         func() time.Time
}

// NewService создает новый экземпляр сервиса записей обслуживания
func NewService(
	recordRepo RecordRepository,
	paymentRepo PaymentRepository,
	carRepo CarRepository,
	packageRepo PackageRepository,
	txManager TransactionManager,
	activities ActivityRecorder,
	logger Logger,
) *Service {
	return &Service{
		recordRepo:  recordRepo,
		paymentRepo: paymentRepo,
		carRepo:     carRepo,
		packageRepo: packageRepo,
		txManager:   txManager,
		activities:  activities,
		logger:      logger,
		now:         time.Now,
	}
}

// List возвращает записи, доступные пользователю
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]models.ServiceRecordResponse, error) {
	s.logger.Info("List: fetching service records for user=%d, admin=%t", actor.UserID, actor.IsAdmin())

	list, err := s.recordRepo.List(ctx, actor.OwnerScope())
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRecordList(list), nil
}

// ListByOwner возвращает записи конкретного пользователя
func (s *Service) ListByOwner(ctx context.Context, userID int64) ([]models.ServiceRecordResponse, error) {
	return s.List(ctx, domain.Actor{UserID: userID, Role: domain.RoleUser})
}

// GetByID возвращает запись с проверкой прав доступа
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.ServiceRecordResponse, error) {
	record, err := s.get(ctx, "GetByID", actor, id)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainRecord(record)
	return &resp, nil
}

// Update изменяет запись. Пустой номер оставляет прежний.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateRecordRequest) (*models.ServiceRecordResponse, error) {
	s.logger.Info("Update: record id=%d by user=%d, car=%d, package=%d", id, actor.UserID, req.CarID, req.PackageID)

	if req.CarID <= 0 || req.PackageID <= 0 || req.ServiceDate.IsZero() {
		s.logger.Warn("Update: car, package and service date are required")
		return nil, ErrInvalidInput
	}
	if !domain.ServiceDateAllowed(req.ServiceDate, s.now().UTC()) {
		s.logger.Warn("Update: service date %s is too far in the future", req.ServiceDate.Format(domain.DateFormat))
		return nil, ErrServiceDateInFuture
	}

	var result *domain.ServiceRecord
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Блокируем запись, чтобы параллельный платеж не обошел проверку остатка
		record, err := s.lock(txCtx, actor, id)
		if err != nil {
			return err
		}

		if err := s.checkCar(txCtx, actor, req.CarID); err != nil {
			return err
		}
		pkg, err := s.checkPackage(txCtx, actor, req.PackageID)
		if err != nil {
			return err
		}

		if pkg.ID != record.PackageID {
			paid, err := s.paymentRepo.SumCompleted(txCtx, id, 0)
			if err != nil {
				s.logger.Error("Update: failed to sum payments for record id=%d: %v", id, err)
				return fmt.Errorf("%w: Update - sum payments: %v", ErrInternal, err)
			}
			if domain.ExceedsBalance(pkg.PackagePrice, paid, 0) {
				s.logger.Warn("Update: record id=%d paid %.2f exceeds price %.2f of package id=%d",
					id, paid, pkg.PackagePrice, pkg.ID)
				return ErrExceedsBalance
			}
		}

		if number := strings.ToUpper(strings.TrimSpace(req.RecordNumber)); number != "" {
			record.RecordNumber = number
		}
		record.ServiceDate = req.ServiceDate
		record.CarID = req.CarID
		record.PackageID = req.PackageID

		if err := s.recordRepo.Update(txCtx, record); err != nil {
			switch {
			case errors.Is(err, recordRepo.ErrNumberTaken):
				s.logger.Warn("Update: record number %s already exists", record.RecordNumber)
				return ErrNumberTaken
			case errors.Is(err, recordRepo.ErrRecordNotFound):
				return ErrRecordNotFound
			}
			s.logger.Error("Update: repository error for record id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		result, err = s.recordRepo.GetByID(txCtx, id)
		if err != nil {
			s.logger.Error("Update: failed to reload record id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - reload record: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.activities.Record(ctx, domain.NewActivity(actor.UserID, domain.ActionServiceUpdate,
		"Service updated", fmt.Sprintf("Service %s updated", result.RecordNumber), domain.EntityService, id))

	s.logger.Info("Update: record id=%d updated", id)
	resp := models.FromDomainRecord(result)
	return &resp, nil
}

// Delete удаляет запись без платежей
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Delete: record id=%d by user=%d", id, actor.UserID)

	record, err := s.get(ctx, "Delete", actor, id)
	if err != nil {
		return err
	}

	if err := s.recordRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, recordRepo.ErrRecordInUse):
			s.logger.Warn("Delete: record id=%d has payments", id)
			return ErrRecordInUse
		case errors.Is(err, recordRepo.ErrRecordNotFound):
			return ErrRecordNotFound
		}
		s.logger.Error("Delete: repository error for record id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.activities.Record(ctx, domain.NewActivity(actor.UserID, domain.ActionServiceDelete,
		"Service deleted", fmt.Sprintf("Service %s deleted", record.RecordNumber), domain.EntityService, id))

	s.logger.Info("Delete: record id=%d deleted", id)
	return nil
}

func (s *Service) get(ctx context.Context, op string, actor domain.Actor, id int64) (*domain.ServiceRecord, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, recordRepo.ErrRecordNotFound) {
			s.logger.Warn("%s: record id=%d not found", op, id)
			return nil, ErrRecordNotFound
		}
		s.logger.Error("%s: repository error for record id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !actor.CanAccess(record.UserID) {
		s.logger.Warn("%s: access denied for user=%d to record id=%d", op, actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return record, nil
}

// lock блокирует запись (FOR UPDATE) с проверкой прав доступа
func (s *Service) lock(ctx context.Context, actor domain.Actor, id int64) (*domain.ServiceRecord, error) {
	record, err := s.recordRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, recordRepo.ErrRecordNotFound) {
			s.logger.Warn("Update: record id=%d not found", id)
			return nil, ErrRecordNotFound
		}
		s.logger.Error("Update: failed to lock record id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - lock record: %v", ErrInternal, err)
	}

	if !actor.CanAccess(record.UserID) {
		s.logger.Warn("Update: access denied for user=%d to record id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return record, nil
}

// checkCar проверяет, что автомобиль существует и доступен пользователю
func (s *Service) checkCar(ctx context.Context, actor domain.Actor, carID int64) error {
	car, err := s.carRepo.GetByID(ctx, carID)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			return ErrCarNotFound
		}
		return fmt.Errorf("%w: get car: %v", ErrInternal, err)
	}
	if !actor.CanAccess(car.UserID) {
		return ErrCarNotFound
	}
	return nil
}

// checkPackage проверяет, что пакет существует и доступен пользователю
func (s *Service) checkPackage(ctx context.Context, actor domain.Actor, packageID int64) (*domain.Package, error) {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("%w: get package: %v", ErrInternal, err)
	}
	if !actor.CanAccess(pkg.UserID) {
		return nil, ErrPackageNotFound
	}
	return pkg, nil
}
