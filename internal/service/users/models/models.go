package models

import (
	authModels "github.com/m04kA/SMC-CarWashService/internal/service/auth/models"
	carModels "github.com/m04kA/SMC-CarWashService/internal/service/cars/models"
	packageModels "github.com/m04kA/SMC-CarWashService/internal/service/packages/models"
	paymentModels "github.com/m04kA/SMC-CarWashService/internal/service/payments/models"
	recordModels "github.com/m04kA/SMC-CarWashService/internal/service/servicerecords/models"
	sessionModels "github.com/m04kA/SMC-CarWashService/internal/service/sessions/models"
)

// UserDetailsResponse все данные пользователя для администратора
type UserDetailsResponse struct {
	User     authModels.UserResponse              `json:"user"`
	Cars     []carModels.CarResponse              `json:"cars"`
	Packages []packageModels.PackageResponse      `json:"packages"`
	Services []recordModels.ServiceRecordResponse `json:"services"`
	Payments []paymentModels.PaymentResponse      `json:"payments"`
	Sessions []sessionModels.SessionResponse      `json:"sessions"`
}
