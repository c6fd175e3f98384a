package packages

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// PackageRepository интерфейс репозитория пакетов услуг
type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.Package) (*domain.Package, error)
	GetByID(ctx context.Context, id int64) (*domain.Package, error)
	List(ctx context.Context, ownerID *int64) ([]*domain.Package, error)
	Update(ctx context.Context, pkg *domain.Package) (*domain.Package, error)
	Delete(ctx context.Context, id int64) error
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	MaxCompletedByPackage(ctx context.Context, packageID int64) (float64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// NumberGenerator генерирует номер пакета, если он не указан
type NumberGenerator interface {
	PackageNumber() string
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
