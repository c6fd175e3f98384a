package cars

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	carRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/car"
	"github.com/m04kA/SMC-CarWashService/internal/service/cars/models"
	"github.com/m04kA/SMC-CarWashService/pkg/filestore"
	"github.com/m04kA/SMC-CarWashService/pkg/numbers"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

// generatedPlateAttempts число попыток сгенерировать свободный номерной знак
const generatedPlateAttempts = 5

// Service сервис автомобилей
type Service struct {
	carRepo    CarRepository
	plates     PlateGenerator
	images     ImageStore
	activities ActivityRecorder
	validator  *validation.Validator
	logger     Logger
}

// NewService создает новый экземпляр сервиса автомобилей
func NewService(
	carRepo CarRepository,
	plates PlateGenerator,
	images ImageStore,
	activities ActivityRecorder,
	logger Logger,
) *Service {
	return &Service{
		carRepo:    carRepo,
		plates:     plates,
		images:     images,
		activities: activities,
		validator:  validation.New(),
		logger:     logger,
	}
}

// List возвращает автомобили, доступные пользователю
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]models.CarResponse, error) {
	s.logger.Info("List: fetching cars for user=%d, admin=%t", actor.UserID, actor.IsAdmin())

	list, err := s.carRepo.List(ctx, actor.OwnerScope())
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCarList(list), nil
}

// ListByOwner возвращает автомобили конкретного пользователя
func (s *Service) ListByOwner(ctx context.Context, userID int64) ([]models.CarResponse, error) {
	return s.List(ctx, domain.Actor{UserID: userID, Role: domain.RoleUser})
}

// GetByID возвращает автомобиль с проверкой прав доступа
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.CarResponse, error) {
	car, err := s.get(ctx, "GetByID", actor, id)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainCar(car)
	return &resp, nil
}

// Create регистрирует автомобиль. Пустой номерной знак генерируется.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req *models.CarRequest) (*models.CarResponse, error) {
	normalize(req)
	s.logger.Info("Create: user=%d, plate=%q", actor.UserID, req.PlateNumber)

	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	var image *string
	if req.Image != nil {
		path, err := s.images.SaveImage(ctx, domain.CarImagesDir, req.Image)
		if err != nil {
			return nil, s.imageError("Create", err)
		}
		image = &path
	}

	car := &domain.Car{
		UserID:      actor.UserID,
		PlateNumber: req.PlateNumber,
		CarType:     req.CarType,
		CarSize:     req.CarSize,
		DriverName:  req.DriverName,
		PhoneNumber: req.PhoneNumber,
		Image:       image,
	}

	created, err := s.create(ctx, car, req.PlateNumber == "")
	if err != nil {
		if image != nil {
			s.discardImage(ctx, *image)
		}
		if errors.Is(err, carRepo.ErrPlateTaken) {
			s.logger.Warn("Create: plate %s already registered", car.PlateNumber)
			return nil, ErrPlateTaken
		}
		s.logger.Error("Create: repository error for user=%d: %v", actor.UserID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.activities.Record(ctx, domain.NewActivity(actor.UserID, domain.ActionCarCreate,
		"Car registered", fmt.Sprintf("Car %s registered", created.PlateNumber), domain.EntityCar, created.ID))

	s.logger.Info("Create: car id=%d created, plate=%s", created.ID, created.PlateNumber)
	resp := models.FromDomainCar(created)
	return &resp, nil
}

// create сохраняет автомобиль; сгенерированный номер при коллизии генерируется заново
func (s *Service) create(ctx context.Context, car *domain.Car, generate bool) (*domain.Car, error) {
	if !generate {
		return s.carRepo.Create(ctx, car)
	}

	var err error
	for i := 0; i < generatedPlateAttempts; i++ {
		car.PlateNumber = s.plates.PlateNumber()

		var created *domain.Car
		created, err = s.carRepo.Create(ctx, car)
		if !errors.Is(err, carRepo.ErrPlateTaken) {
			return created, err
		}
	}
	return nil, err
}

// Update изменяет автомобиль. Пустой номерной знак оставляет прежний.
func (s *Service) Update(ctx context.Context, actor domain.Actor, id int64, req *models.CarRequest) (*models.CarResponse, error) {
	normalize(req)
	s.logger.Info("Update: car id=%d by user=%d", id, actor.UserID)

	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("Update: validation failed for car id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	car, err := s.get(ctx, "Update", actor, id)
	if err != nil {
		return nil, err
	}

	oldImage := car.Image
	if req.PlateNumber != "" {
		car.PlateNumber = req.PlateNumber
	}
	car.CarType = req.CarType
	car.CarSize = req.CarSize
	car.DriverName = req.DriverName
	car.PhoneNumber = req.PhoneNumber

	var newImage string
	if req.Image != nil {
		newImage, err = s.images.SaveImage(ctx, domain.CarImagesDir, req.Image)
		if err != nil {
			return nil, s.imageError("Update", err)
		}
		car.Image = &newImage
	}

	updated, err := s.carRepo.Update(ctx, car)
	if err != nil {
		s.discardImage(ctx, newImage)
		switch {
		case errors.Is(err, carRepo.ErrPlateTaken):
			s.logger.Warn("Update: plate %s already registered", car.PlateNumber)
			return nil, ErrPlateTaken
		case errors.Is(err, carRepo.ErrCarNotFound):
			return nil, ErrCarNotFound
		}
		s.logger.Error("Update: repository error for car id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	if newImage != "" && oldImage != nil {
		s.discardImage(ctx, *oldImage)
	}

	s.activities.Record(ctx, domain.NewActivity(actor.UserID, domain.ActionCarUpdate,
		"Car updated", fmt.Sprintf("Car %s updated", updated.PlateNumber), domain.EntityCar, updated.ID))

	s.logger.Info("Update: car id=%d updated", id)
	resp := models.FromDomainCar(updated)
	return &resp, nil
}

// Delete удаляет автомобиль вместе с изображением
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	s.logger.Info("Delete: car id=%d by user=%d", id, actor.UserID)

	car, err := s.get(ctx, "Delete", actor, id)
	if err != nil {
		return err
	}

	if err := s.carRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, carRepo.ErrCarInUse):
			s.logger.Warn("Delete: car id=%d has service records", id)
			return ErrCarInUse
		case errors.Is(err, carRepo.ErrCarNotFound):
			return ErrCarNotFound
		}
		s.logger.Error("Delete: repository error for car id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if car.Image != nil {
		s.discardImage(ctx, *car.Image)
	}

	s.activities.Record(ctx, domain.NewActivity(actor.UserID, domain.ActionCarDelete,
		"Car deleted", fmt.Sprintf("Car %s deleted", car.PlateNumber), domain.EntityCar, id))

	s.logger.Info("Delete: car id=%d deleted", id)
	return nil
}

func (s *Service) get(ctx context.Context, op string, actor domain.Actor, id int64) (*domain.Car, error) {
	car, err := s.carRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, carRepo.ErrCarNotFound) {
			s.logger.Warn("%s: car id=%d not found", op, id)
			return nil, ErrCarNotFound
		}
		s.logger.Error("%s: repository error for car id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	if !actor.CanAccess(car.UserID) {
		s.logger.Warn("%s: access denied for user=%d to car id=%d", op, actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return car, nil
}

func (s *Service) imageError(op string, err error) error {
	switch {
	case errors.Is(err, filestore.ErrUnsupportedType):
		s.logger.Warn("%s: unsupported image type", op)
		return ErrInvalidImage
	case errors.Is(err, filestore.ErrTooLarge):
		s.logger.Warn("%s: image is too large", op)
		return ErrImageTooLarge
	}
	s.logger.Error("%s: failed to save image: %v", op, err)
	return fmt.Errorf("%w: %s - save image: %v", ErrInternal, op, err)
}

func (s *Service) discardImage(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.images.Delete(ctx, path); err != nil {
		s.logger.Warn("failed to delete image %s: %v", path, err)
	}
}

func normalize(req *models.CarRequest) {
	req.PlateNumber = numbers.NormalizePlate(req.PlateNumber)
	req.CarType = strings.TrimSpace(req.CarType)
	req.CarSize = strings.TrimSpace(req.CarSize)
	req.DriverName = strings.TrimSpace(req.DriverName)
	req.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
}
