package cars

import (
	"context"
	"io"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// CarRepository интерфейс репозитория автомобилей
type CarRepository interface {
	Create(ctx context.Context, car *domain.Car) (*domain.Car, error)
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	List(ctx context.Context, ownerID *int64) ([]*domain.Car, error)
	Update(ctx context.Context, car *domain.Car) (*domain.Car, error)
	Delete(ctx context.Context, id int64) error
}

// PlateGenerator генерирует номерной знак, если он не указан
type PlateGenerator interface {
	PlateNumber() string
}

// ImageStore хранилище загруженных изображений
type ImageStore interface {
	SaveImage(ctx context.Context, dir string, r io.Reader) (string, error)
	Delete(ctx context.Context, publicPath string) error
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
