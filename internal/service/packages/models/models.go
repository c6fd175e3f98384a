package models

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// PackageRequest запрос на создание или изменение пакета
type PackageRequest struct {
	PackageNumber      string  `json:"packageNumber" validate:"max=30"`
	PackageName        string  `json:"packageName" validate:"required,max=100"`
	PackageDescription string  `json:"packageDescription" validate:"max=1000"`
	PackagePrice       float64 `json:"packagePrice" validate:"gt=0"`
}

// PackageResponse данные пакета
type PackageResponse struct {
	ID                 int64   `json:"_id"`
	UserID             int64   `json:"userId"`
	PackageNumber      string  `json:"packageNumber"`
	PackageName        string  `json:"packageName"`
	PackageDescription string  `json:"packageDescription"`
	PackagePrice       float64 `json:"packagePrice"`
	CreatedAt          string  `json:"createdAt"`
	UpdatedAt          string  `json:"updatedAt"`
}

// FromDomainPackage конвертирует domain.Package в PackageResponse
func FromDomainPackage(p *domain.Package) PackageResponse {
	return PackageResponse{
		ID:                 p.ID,
		UserID:             p.UserID,
		PackageNumber:      p.PackageNumber,
		PackageName:        p.PackageName,
		PackageDescription: p.PackageDescription,
		PackagePrice:       p.PackagePrice,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          p.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainPackageList конвертирует список пакетов
func FromDomainPackageList(list []*domain.Package) []PackageResponse {
	result := make([]PackageResponse, 0, len(list))
	for _, p := range list {
		result = append(result, FromDomainPackage(p))
	}
	return result
}
