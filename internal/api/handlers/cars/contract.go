package cars

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/cars/models"
)

type CarService interface {
	List(ctx context.Context, actor domain.Actor) ([]models.CarResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.CarResponse, error)
	Create(ctx context.Context, actor domain.Actor, req *models.CarRequest) (*models.CarResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *models.CarRequest) (*models.CarResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
