package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/auth/models"
)

// AuthService сервис аутентификации
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest, client domain.ClientInfo) (*models.AuthResult, error)
	Login(ctx context.Context, req *models.LoginRequest, client domain.ClientInfo) (*models.AuthResult, error)
	LoginGoogle(ctx context.Context, req *models.GoogleLoginRequest, client domain.ClientInfo) (*models.AuthResult, error)
	Logout(ctx context.Context, userID int64, sessionID string) error
	Me(ctx context.Context, userID int64) (*models.UserResponse, error)
	EditProfile(ctx context.Context, userID int64, req *models.EditProfileRequest) (*models.ProfileResponse, error)
}

// SessionCookie cookie с идентификатором сессии
type SessionCookie interface {
	Write(w http.ResponseWriter, r *http.Request, sessionID string, expiresAt time.Time) error
	Clear(w http.ResponseWriter, r *http.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
