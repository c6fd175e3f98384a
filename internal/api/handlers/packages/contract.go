package packages

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/packages/models"
)

type PackageService interface {
	List(ctx context.Context, actor domain.Actor) ([]models.PackageResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.PackageResponse, error)
	Create(ctx context.Context, actor domain.Actor, req *models.PackageRequest) (*models.PackageResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *models.PackageRequest) (*models.PackageResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
