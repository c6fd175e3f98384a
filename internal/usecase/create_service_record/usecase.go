package create_service_record

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	carRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/car"
	recordRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/servicerecord"
	packageRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/washpackage"
	"github.com/m04kA/SMC-CarWashService/internal/service/servicerecords/models"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

// generatedNumberAttempts число попыток подобрать свободный сгенерированный номер
const generatedNumberAttempts = 5

// UseCase use case для создания записи обслуживания
type UseCase struct {
	recordRepo   RecordRepository
	carRepo      CarRepository
	packageRepo  PackageRepository
	numbers      NumberGenerator
	txManager    TransactionManager
	activities   ActivityRecorder
	timeProvider TimeProvider
	validator    *validation.Validator
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	recordRepo RecordRepository,
	carRepo CarRepository,
	packageRepo PackageRepository,
	numbers NumberGenerator,
	txManager TransactionManager,
	activities ActivityRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		recordRepo:   recordRepo,
		carRepo:      carRepo,
		packageRepo:  packageRepo,
		numbers:      numbers,
		txManager:    txManager,
		activities:   activities,
		timeProvider: &RealTimeProvider{},
		validator:    validation.New(),
		logger:       logger,
	}
}

// Execute выполняет use case создания записи обслуживания.
// Проверка автомобиля и пакета и вставка записи идут в одной сериализуемой транзакции.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateServiceRecord: user=%d, car=%d, package=%d, date=%s",
		req.Actor.UserID, req.CarID, req.PackageID, req.ServiceDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	req.RecordNumber = strings.ToUpper(strings.TrimSpace(req.RecordNumber))
	if err := uc.validator.Struct(req); err != nil {
		uc.logger.Warn("CreateServiceRecord: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 2. Дата обслуживания не дальше завтрашнего дня
	if !domain.ServiceDateAllowed(req.ServiceDate, uc.timeProvider.Now().UTC()) {
		uc.logger.Warn("CreateServiceRecord: service date %s is too far in the future",
			req.ServiceDate.Format(domain.DateFormat))
		return nil, ErrServiceDateInFuture
	}

	// 3. Сохраняем запись; коллизия сгенерированного номера прерывает
	// транзакцию, поэтому она повторяется целиком с новым номером
	generate := req.RecordNumber == ""
	attempts := 1
	if generate {
		attempts = generatedNumberAttempts
	}

	var (
		result *domain.ServiceRecord
		err    error
	)
	for i := 0; i < attempts; i++ {
		number := req.RecordNumber
		if generate {
			number = uc.numbers.ServiceNumber()
		}

		result, err = uc.create(ctx, req, number)
		if !errors.Is(err, ErrNumberTaken) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	uc.activities.Record(ctx, domain.NewActivity(req.Actor.UserID, domain.ActionServiceCreate,
		"Service recorded", fmt.Sprintf("Service %s recorded for %s", result.RecordNumber, plateOf(result)),
		domain.EntityService, result.ID))

	uc.logger.Info("CreateServiceRecord: successfully created record id=%d", result.ID)

	resp := models.FromDomainRecord(result)
	return &resp, nil
}

// create проверяет автомобиль и пакет и вставляет запись в одной сериализуемой транзакции
func (uc *UseCase) create(ctx context.Context, req *Request, number string) (*domain.ServiceRecord, error) {
	var result *domain.ServiceRecord

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Автомобиль должен существовать и быть виден пользователю
		if err := uc.checkCar(txCtx, req.Actor, req.CarID); err != nil {
			return err
		}

		// То же для пакета
		if err := uc.checkPackage(txCtx, req.Actor, req.PackageID); err != nil {
			return err
		}

		created, err := uc.recordRepo.Create(txCtx, &domain.ServiceRecord{
			UserID:       req.Actor.UserID,
			RecordNumber: number,
			ServiceDate:  req.ServiceDate,
			CarID:        req.CarID,
			PackageID:    req.PackageID,
		})
		if err != nil {
			switch {
			case errors.Is(err, recordRepo.ErrNumberTaken):
				uc.logger.Warn("CreateServiceRecord: record number %s already exists", number)
				return ErrNumberTaken
			case errors.Is(err, recordRepo.ErrBrokenReference):
				uc.logger.Warn("CreateServiceRecord: car or package disappeared: %v", err)
				return ErrCarNotFound
			}
			uc.logger.Error("CreateServiceRecord: failed to create record: %v", err)
			return fmt.Errorf("%w: failed to create record: %v", ErrInternal, err)
		}

		// Перечитываем запись вместе с данными автомобиля, пакета и владельца
		result, err = uc.recordRepo.GetByID(txCtx, created.ID)
		if err != nil {
			uc.logger.Error("CreateServiceRecord: failed to reload record id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to reload record: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// checkCar проверяет, что автомобиль существует и доступен пользователю.
// Чужой автомобиль выглядит как несуществующий.
func (uc *UseCase) checkCar(ctx context.Context, actor domain.Actor, carID int64) error {
	car, err := uc.carRepo.GetByID(ctx, carID)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			uc.logger.Warn("CreateServiceRecord: car id=%d not found", carID)
			return ErrCarNotFound
		}
		uc.logger.Error("CreateServiceRecord: failed to get car id=%d: %v", carID, err)
		return fmt.Errorf("%w: failed to get car: %v", ErrInternal, err)
	}
	if !actor.CanAccess(car.UserID) {
		uc.logger.Warn("CreateServiceRecord: car id=%d is not visible to user=%d", carID, actor.UserID)
		return ErrCarNotFound
	}
	return nil
}

// checkPackage проверяет, что пакет существует и доступен пользователю
func (uc *UseCase) checkPackage(ctx context.Context, actor domain.Actor, packageID int64) error {
	pkg, err := uc.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		if errors.Is(err, packageRepo.ErrPackageNotFound) {
			uc.logger.Warn("CreateServiceRecord: package id=%d not found", packageID)
			return ErrPackageNotFound
		}
		uc.logger.Error("CreateServiceRecord: failed to get package id=%d: %v", packageID, err)
		return fmt.Errorf("%w: failed to get package: %v", ErrInternal, err)
	}
	if !actor.CanAccess(pkg.UserID) {
		uc.logger.Warn("CreateServiceRecord: package id=%d is not visible to user=%d", packageID, actor.UserID)
		return ErrPackageNotFound
	}
	return nil
}

func plateOf(record *domain.ServiceRecord) string {
	if record.Car == nil {
		return fmt.Sprintf("car #%d", record.CarID)
	}
	return record.Car.PlateNumber
}
