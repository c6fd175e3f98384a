package models

import (
	"io"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// Request модели

// RegisterRequest запрос на регистрацию
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,username"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest запрос на вход по паролю
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// GoogleLoginRequest запрос на вход через Google
type GoogleLoginRequest struct {
	Credential string `json:"credential" validate:"required"`
}

// EditProfileRequest запрос на изменение профиля; пустые поля не меняются
type EditProfileRequest struct {
	Username string    `json:"username" validate:"omitempty,min=3,max=50,username"`
	Email    string    `json:"email" validate:"omitempty,email"`
	FullName string    `json:"fullName" validate:"omitempty,max=100"`
	Image    io.Reader `json:"-" validate:"-"`
}

// Response модели

// UserResponse данные пользователя
type UserResponse struct {
	ID           int64   `json:"_id"`
	Username     string  `json:"username"`
	Email        *string `json:"email,omitempty"`
	FullName     *string `json:"fullName,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
	Role         string  `json:"role"`
	Provider     string  `json:"provider"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

// AuthResult результат входа: пользователь и идентификатор новой сессии
type AuthResult struct {
	User      UserResponse
	SessionID string
	ExpiresAt time.Time
}

// ProfileResponse ответ на изменение профиля
type ProfileResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// FromDomainUser конвертирует domain.User в UserResponse
func FromDomainUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FullName:     u.FullName,
		ProfileImage: u.ProfileImage,
		Role:         string(u.Role),
		Provider:     string(u.Provider),
		CreatedAt:    u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    u.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainUserList конвертирует список пользователей
func FromDomainUserList(list []*domain.User) []UserResponse {
	result := make([]UserResponse, 0, len(list))
	for _, u := range list {
		result = append(result, FromDomainUser(u))
	}
	return result
}
