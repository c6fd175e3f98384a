package auth

import (
	"context"
	"io"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/integrations/googleauth"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateProfile(ctx context.Context, id int64, update domain.ProfileUpdate) (*domain.User, error)
	LinkGoogle(ctx context.Context, id int64, googleID string) (*domain.User, error)
}

// PasswordHasher интерфейс хеширования паролей
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// GoogleVerifier проверяет Google credential
type GoogleVerifier interface {
	Verify(ctx context.Context, credential string) (*googleauth.Identity, error)
}

// SessionManager открывает и закрывает сессии
type SessionManager interface {
	Open(ctx context.Context, userID int64, client domain.ClientInfo) (*domain.Session, error)
	Close(ctx context.Context, userID int64, sessionID string) error
}

// ImageStore хранилище загруженных изображений
type ImageStore interface {
	SaveImage(ctx context.Context, dir string, r io.Reader) (string, error)
	Delete(ctx context.Context, publicPath string) error
}

// ActivityRecorder записывает события в ленту активности
type ActivityRecorder interface {
	Record(ctx context.Context, a *domain.Activity)
}

// Metrics счетчики попыток входа
type Metrics interface {
	ObserveAuthAttempt(method, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
