package service_records

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/servicerecords/models"
	createServiceRecord "github.com/m04kA/SMC-CarWashService/internal/usecase/create_service_record"
)

type CreateServiceRecordUseCase interface {
	Execute(ctx context.Context, req *createServiceRecord.Request) (*createServiceRecord.Response, error)
}

type RecordService interface {
	List(ctx context.Context, actor domain.Actor) ([]models.ServiceRecordResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.ServiceRecordResponse, error)
	Update(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateRecordRequest) (*models.ServiceRecordResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
