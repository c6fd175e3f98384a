package servicerecords

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// RecordRepository интерфейс репозитория записей обслуживания
type RecordRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.ServiceRecord, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.ServiceRecord, error)
	List(ctx context.Context, ownerID *int64) ([]*domain.ServiceRecord, error)
	Update(ctx context.Context, record *domain.ServiceRecord) error
	Delete(ctx context.Context, id int64) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	SumCompleted(ctx context.Context, recordID int64, excludeID int64) (float64, error)
}

// CarRepository интерфейс репозитория автомобилей
type CarRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
}

// PackageRepository интерфейс репозитория пакетов
type PackageRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Package, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ActivityRecorder записывает события в ленту активности
type ActivityRecorder interface {
	Record(ctx context.Context, a *domain.Activity)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
