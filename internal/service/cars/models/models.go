package models

import (
	"io"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// CarRequest данные формы автомобиля (multipart)
type CarRequest struct {
	PlateNumber string    `json:"plateNumber" validate:"max=20"`
	CarType     string    `json:"carType" validate:"max=50"`
	CarSize     string    `json:"carSize" validate:"max=50"`
	DriverName  string    `json:"driverName" validate:"max=100"`
	PhoneNumber string    `json:"phoneNumber" validate:"omitempty,phone"`
	Image       io.Reader `json:"-" validate:"-"`
}

// CarResponse данные автомобиля
type CarResponse struct {
	ID          int64   `json:"_id"`
	UserID      int64   `json:"userId"`
	PlateNumber string  `json:"plateNumber"`
	CarType     string  `json:"carType"`
	CarSize     string  `json:"carSize"`
	DriverName  string  `json:"driverName"`
	PhoneNumber string  `json:"phoneNumber"`
	Image       *string `json:"image,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// FromDomainCar конвертирует domain.Car в CarResponse
func FromDomainCar(c *domain.Car) CarResponse {
	return CarResponse{
		ID:          c.ID,
		UserID:      c.UserID,
		PlateNumber: c.PlateNumber,
		CarType:     c.CarType,
		CarSize:     c.CarSize,
		DriverName:  c.DriverName,
		PhoneNumber: c.PhoneNumber,
		Image:       c.Image,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   c.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainCarList конвертирует список автомобилей
func FromDomainCarList(list []*domain.Car) []CarResponse {
	result := make([]CarResponse, 0, len(list))
	for _, c := range list {
		result = append(result, FromDomainCar(c))
	}
	return result
}
