package users

import (
	"context"

	authModels "github.com/m04kA/SMC-CarWashService/internal/service/auth/models"
	"github.com/m04kA/SMC-CarWashService/internal/service/users/models"
)

type UserService interface {
	List(ctx context.Context) ([]authModels.UserResponse, error)
	Details(ctx context.Context, userID int64) (*models.UserDetailsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
