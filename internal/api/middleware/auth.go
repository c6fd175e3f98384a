package middleware

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/service/sessions"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgAdminOnly        = "Admin access required"
)

// Auth проверка сессии и роли пользователя
type Auth struct {
	sessions Authenticator
	cookie   *SessionCookie
	logger   Logger
}

// NewAuth создает middleware аутентификации
func NewAuth(sessions Authenticator, cookie *SessionCookie, logger Logger) *Auth {
	return &Auth{
		sessions: sessions,
		cookie:   cookie,
		logger:   logger,
	}
}

// RequireAuth пропускает только запросы с активной сессией
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := a.cookie.Read(r)
		if err != nil {
			handlers.RespondUnauthorized(w, msgNotAuthenticated)
			return
		}

		user, session, err := a.sessions.Authenticate(r.Context(), sessionID)
		if err != nil {
			if errors.Is(err, sessions.ErrInternal) {
				a.logger.Error("%s %s - Failed to authenticate session: %v", r.Method, r.URL.Path, err)
				handlers.RespondInternalError(w)
				return
			}

			a.logger.Warn("%s %s - Rejected session: %v", r.Method, r.URL.Path, err)
			_ = a.cookie.Clear(w, r)
			handlers.RespondUnauthorized(w, msgNotAuthenticated)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAuth(r.Context(), user, session.SessionID)))
	})
}

// RequireAdmin пропускает только администраторов. Ставится после RequireAuth.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgNotAuthenticated)
			return
		}
		if !user.IsAdmin() {
			a.logger.Warn("%s %s - Admin access denied: user_id=%d", r.Method, r.URL.Path, user.ID)
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}
