package payments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	List(ctx context.Context, ownerID *int64) ([]*domain.Payment, error)
	SumCompleted(ctx context.Context, recordID int64, excludeID int64) (float64, error)
	UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus, at time.Time) error
	Delete(ctx context.Context, id int64) error
}

// RecordRepository интерфейс репозитория записей обслуживания
type RecordRepository interface {
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.ServiceRecord, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
