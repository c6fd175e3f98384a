package models

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// UpdateRecordRequest запрос на изменение записи обслуживания
type UpdateRecordRequest struct {
	RecordNumber string
	ServiceDate  time.Time
	CarID        int64
	PackageID    int64
}

// CarRef краткие данные автомобиля
type CarRef struct {
	ID          int64  `json:"_id"`
	PlateNumber string `json:"plateNumber"`
	CarType     string `json:"carType"`
	DriverName  string `json:"driverName"`
}

// PackageRef краткие данные пакета
type PackageRef struct {
	ID           int64   `json:"_id"`
	PackageName  string  `json:"packageName"`
	PackagePrice float64 `json:"packagePrice"`
}

// UserRef краткие данные владельца записи
type UserRef struct {
	ID       int64  `json:"_id"`
	Username string `json:"username"`
}

// ServiceRecordResponse данные записи обслуживания
type ServiceRecordResponse struct {
	ID           int64      `json:"_id"`
	RecordNumber string     `json:"recordNumber"`
	ServiceDate  string     `json:"serviceDate"` // "2025-10-15"
	Car          CarRef     `json:"car"`
	Package      PackageRef `json:"package"`
	User         UserRef    `json:"user"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt"`
}

// FromDomainRecord конвертирует domain.ServiceRecord в ServiceRecordResponse
func FromDomainRecord(r *domain.ServiceRecord) ServiceRecordResponse {
	resp := ServiceRecordResponse{
		ID:           r.ID,
		RecordNumber: r.RecordNumber,
		ServiceDate:  r.ServiceDate.Format(domain.DateFormat),
		Car:          CarRef{ID: r.CarID},
		Package:      PackageRef{ID: r.PackageID},
		User:         UserRef{ID: r.UserID, Username: r.Username},
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    r.UpdatedAt.Format(time.RFC3339),
	}

	if r.Car != nil {
		resp.Car = CarRef{
			ID:          r.Car.ID,
			PlateNumber: r.Car.PlateNumber,
			CarType:     r.Car.CarType,
			DriverName:  r.Car.DriverName,
		}
	}
	if r.Package != nil {
		resp.Package = PackageRef{
			ID:           r.Package.ID,
			PackageName:  r.Package.PackageName,
			PackagePrice: r.Package.PackagePrice,
		}
	}

	return resp
}

// FromDomainRecordList конвертирует список записей
func FromDomainRecordList(list []*domain.ServiceRecord) []ServiceRecordResponse {
	result := make([]ServiceRecordResponse, 0, len(list))
	for _, r := range list {
		result = append(result, FromDomainRecord(r))
	}
	return result
}
