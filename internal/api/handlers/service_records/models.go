package service_records

import (
	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/servicerecords/models"
	createServiceRecord "github.com/m04kA/SMC-CarWashService/internal/usecase/create_service_record"
)

// RecordRequest HTTP request model для создания и изменения записи
type RecordRequest struct {
	RecordNumber string      `json:"recordNumber"`
	ServiceDate  string      `json:"serviceDate"` // "2025-10-15"
	Car          handlers.ID `json:"car"`
	Package      handlers.ID `json:"package"`
}

// ToCreateRequest конвертирует HTTP запрос в модель use case
func (r *RecordRequest) ToCreateRequest(actor domain.Actor) (*createServiceRecord.Request, error) {
	serviceDate, err := handlers.ParseDate(r.ServiceDate)
	if err != nil {
		return nil, err
	}

	return &createServiceRecord.Request{
		Actor:        actor,
		RecordNumber: r.RecordNumber,
		ServiceDate:  serviceDate,
		CarID:        r.Car.Int64(),
		PackageID:    r.Package.Int64(),
	}, nil
}

// ToUpdateRequest конвертирует HTTP запрос в модель сервиса
func (r *RecordRequest) ToUpdateRequest() (*models.UpdateRecordRequest, error) {
	serviceDate, err := handlers.ParseDate(r.ServiceDate)
	if err != nil {
		return nil, err
	}

	return &models.UpdateRecordRequest{
		RecordNumber: r.RecordNumber,
		ServiceDate:  serviceDate,
		CarID:        r.Car.Int64(),
		PackageID:    r.Package.Int64(),
	}, nil
}
