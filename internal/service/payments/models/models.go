package models

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// UpdateStatusRequest запрос на изменение статуса платежа
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CarRef краткие данные автомобиля
type CarRef struct {
	PlateNumber string `json:"plateNumber"`
	CarType     string `json:"carType"`
}

// PackageRef краткие данные пакета
type PackageRef struct {
	PackageName  string  `json:"packageName"`
	PackagePrice float64 `json:"packagePrice"`
}

// ServicePackageRef краткие данные оплачиваемой записи обслуживания
type ServicePackageRef struct {
	ID           int64      `json:"_id"`
	RecordNumber string     `json:"recordNumber"`
	Car          CarRef     `json:"car"`
	Package      PackageRef `json:"package"`
}

// PaymentResponse данные платежа
type PaymentResponse struct {
	ID             int64             `json:"_id"`
	UserID         int64             `json:"userId"`
	PaymentNumber  string            `json:"paymentNumber"`
	AmountPaid     float64           `json:"amountPaid"`
	PaymentDate    string            `json:"paymentDate"` // "2025-10-15"
	PaymentMethod  string            `json:"paymentMethod"`
	Status         string            `json:"status"`
	ServicePackage ServicePackageRef `json:"servicePackage"`
	CreatedAt      string            `json:"createdAt"`
	UpdatedAt      string            `json:"updatedAt"`
}

// FromDomainPayment конвертирует domain.Payment в PaymentResponse
func FromDomainPayment(p *domain.Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		PaymentNumber:  p.PaymentNumber,
		AmountPaid:     p.AmountPaid,
		PaymentDate:    p.PaymentDate.Format(domain.DateFormat),
		PaymentMethod:  string(p.PaymentMethod),
		Status:         string(p.Status),
		ServicePackage: ServicePackageRef{ID: p.ServicePackageID},
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}

	if sp := p.ServicePackage; sp != nil {
		resp.ServicePackage = ServicePackageRef{
			ID:           sp.ID,
			RecordNumber: sp.RecordNumber,
			Car: CarRef{
				PlateNumber: sp.Car.PlateNumber,
				CarType:     sp.Car.CarType,
			},
			Package: PackageRef{
				PackageName:  sp.Package.PackageName,
				PackagePrice: sp.Package.PackagePrice,
			},
		}
	}

	return resp
}

// FromDomainPaymentList конвертирует список платежей
func FromDomainPaymentList(list []*domain.Payment) []PaymentResponse {
	result := make([]PaymentResponse, 0, len(list))
	for _, p := range list {
		result = append(result, FromDomainPayment(p))
	}
	return result
}
