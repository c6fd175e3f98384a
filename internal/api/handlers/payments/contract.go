package payments

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/payments/models"
	recordPayment "github.com/m04kA/SMC-CarWashService/internal/usecase/record_payment"
)

type RecordPaymentUseCase interface {
	Execute(ctx context.Context, req *recordPayment.Request) (*recordPayment.Response, error)
}

type PaymentService interface {
	List(ctx context.Context, actor domain.Actor) ([]models.PaymentResponse, error)
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*models.PaymentResponse, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, id int64, req *models.UpdateStatusRequest) (*models.PaymentResponse, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
