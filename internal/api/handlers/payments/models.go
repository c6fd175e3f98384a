package payments

import (
	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	recordPayment "github.com/m04kA/SMC-CarWashService/internal/usecase/record_payment"
)

// PaymentRequest HTTP request model
type PaymentRequest struct {
	PaymentNumber  string      `json:"paymentNumber"`
	AmountPaid     float64     `json:"amountPaid"`
	PaymentDate    string      `json:"paymentDate"` // "2025-10-15"
	PaymentMethod  string      `json:"paymentMethod"`
	Status         string      `json:"status"`
	ServicePackage handlers.ID `json:"servicePackage"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *PaymentRequest) ToUseCaseRequest(actor domain.Actor) (*recordPayment.Request, error) {
	paymentDate, err := handlers.ParseDate(r.PaymentDate)
	if err != nil {
		return nil, err
	}

	return &recordPayment.Request{
		Actor:            actor,
		PaymentNumber:    r.PaymentNumber,
		AmountPaid:       r.AmountPaid,
		PaymentDate:      paymentDate,
		PaymentMethod:    r.PaymentMethod,
		Status:           r.Status,
		ServicePackageID: r.ServicePackage.Int64(),
	}, nil
}
