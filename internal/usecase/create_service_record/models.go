package create_service_record

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/servicerecords/models"
)

// Request модель запроса на создание записи обслуживания
type Request struct {
	Actor        domain.Actor `json:"-"`                                // Кто создает запись (он же владелец)
	RecordNumber string       `json:"recordNumber" validate:"max=30"`   // Номер записи (пустой - будет сгенерирован)
	ServiceDate  time.Time    `json:"serviceDate" validate:"required"`  // Дата обслуживания
	CarID        int64        `json:"car" validate:"required,gt=0"`     // ID автомобиля
	PackageID    int64        `json:"package" validate:"required,gt=0"` // ID пакета
}

// Response созданная запись в формате API
type Response = models.ServiceRecordResponse
