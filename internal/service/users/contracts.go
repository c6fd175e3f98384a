package users

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	carModels "github.com/m04kA/SMC-CarWashService/internal/service/cars/models"
	packageModels "github.com/m04kA/SMC-CarWashService/internal/service/packages/models"
	paymentModels "github.com/m04kA/SMC-CarWashService/internal/service/payments/models"
	recordModels "github.com/m04kA/SMC-CarWashService/internal/service/servicerecords/models"
	sessionModels "github.com/m04kA/SMC-CarWashService/internal/service/sessions/models"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// CarLister возвращает автомобили пользователя
type CarLister interface {
	ListByOwner(ctx context.Context, userID int64) ([]carModels.CarResponse, error)
}

// PackageLister возвращает пакеты пользователя
type PackageLister interface {
	ListByOwner(ctx context.Context, userID int64) ([]packageModels.PackageResponse, error)
}

// RecordLister возвращает записи обслуживания пользователя
type RecordLister interface {
	ListByOwner(ctx context.Context, userID int64) ([]recordModels.ServiceRecordResponse, error)
}

// PaymentLister возвращает платежи пользователя
type PaymentLister interface {
	ListByOwner(ctx context.Context, userID int64) ([]paymentModels.PaymentResponse, error)
}

// SessionLister возвращает активные сессии пользователя
type SessionLister interface {
	ListForUser(ctx context.Context, userID int64) ([]sessionModels.SessionResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
