package sessions

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/service/sessions/models"
)

type SessionService interface {
	List(ctx context.Context, userID int64, currentSessionID string) ([]models.SessionResponse, error)
	Revoke(ctx context.Context, userID int64, sessionID, currentSessionID string) (bool, error)
	RevokeAll(ctx context.Context, userID int64) (int64, error)
}

// CookieCleaner удаляет cookie сессии
type CookieCleaner interface {
	Clear(w http.ResponseWriter, r *http.Request) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
