package middleware

import (
	"context"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

type contextKey int

const (
	userKey contextKey = iota
	sessionIDKey
)

// WithAuth кладет пользователя и идентификатор сессии в контекст
func WithAuth(ctx context.Context, user *domain.User, sessionID string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetUser возвращает аутентифицированного пользователя
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok && user != nil
}

// GetUserID возвращает ID аутентифицированного пользователя
func GetUserID(ctx context.Context) (int64, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return 0, false
	}
	return user.ID, true
}

// GetActor возвращает пользователя вместе с ролью для проверки прав доступа
func GetActor(ctx context.Context) (domain.Actor, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: user.ID, Role: user.Role}, true
}

// GetSessionID возвращает идентификатор текущей сессии
func GetSessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}
