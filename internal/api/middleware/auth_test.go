package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	"github.com/m04kA/SMC-CarWashService/internal/service/sessions"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeAuthenticator struct {
	users map[string]*domain.User
	err   error
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, sessionID string) (*domain.User, *domain.Session, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	user, ok := f.users[sessionID]
	if !ok {
		return nil, nil, sessions.ErrSessionNotFound
	}
	return user, &domain.Session{SessionID: sessionID, UserID: user.ID}, nil
}

func newCookie() *SessionCookie {
	return NewSessionCookie(testSecret, "carwash_session", false, time.Hour)
}

// withSession возвращает запрос с подписанной cookie сессии
func withSession(t *testing.T, cookie *SessionCookie, r *http.Request, sessionID string) *http.Request {
	t.Helper()

	rec := httptest.NewRecorder()
	require.NoError(t, cookie.Write(rec, httptest.NewRequest(http.MethodGet, "/", nil), sessionID, time.Now().Add(time.Hour)))
	for _, c := range rec.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := GetActor(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		w.Header().Set("X-Actor", string(actor.Role))
		w.Header().Set("X-Session", GetSessionID(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_RequireAuth(t *testing.T) {
	cookie := newCookie()
	auth := NewAuth(&fakeAuthenticator{users: map[string]*domain.User{
		"s-user": {ID: 7, Role: domain.RoleUser},
	}}, cookie, logger.NewNop())
	h := auth.RequireAuth(okHandler())

	t.Run("no cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/car", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"code":401,"message":"Not authenticated"}`, rec.Body.String())
	})

	t.Run("valid session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, withSession(t, cookie, httptest.NewRequest(http.MethodGet, "/car", nil), "s-user"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user", rec.Header().Get("X-Actor"))
		assert.Equal(t, "s-user", rec.Header().Get("X-Session"))
	})

	t.Run("revoked session clears cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, withSession(t, cookie, httptest.NewRequest(http.MethodGet, "/car", nil), "s-gone"))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.True(t, cookies[0].MaxAge < 0)
	})

	t.Run("tampered cookie", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/car", nil)
		r.AddCookie(&http.Cookie{Name: "carwash_session", Value: "forged"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuth_RequireAuth_InternalError(t *testing.T) {
	cookie := newCookie()
	auth := NewAuth(&fakeAuthenticator{err: sessions.ErrInternal}, cookie, logger.NewNop())

	rec := httptest.NewRecorder()
	auth.RequireAuth(okHandler()).ServeHTTP(rec, withSession(t, cookie, httptest.NewRequest(http.MethodGet, "/", nil), "s-1"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAuth_RequireAdmin(t *testing.T) {
	cookie := newCookie()
	auth := NewAuth(&fakeAuthenticator{users: map[string]*domain.User{
		"s-user":  {ID: 7, Role: domain.RoleUser},
		"s-admin": {ID: 1, Role: domain.RoleAdmin},
	}}, cookie, logger.NewNop())
	h := auth.RequireAuth(auth.RequireAdmin(okHandler()))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withSession(t, cookie, httptest.NewRequest(http.MethodGet, "/auth/admin/users", nil), "s-user"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, withSession(t, cookie, httptest.NewRequest(http.MethodGet, "/auth/admin/users", nil), "s-admin"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Header().Get("X-Actor"))
}

func TestSessionCookie_Clear(t *testing.T) {
	cookie := newCookie()

	rec := httptest.NewRecorder()
	require.NoError(t, cookie.Clear(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil)))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "carwash_session", cookies[0].Name)
	assert.True(t, cookies[0].MaxAge < 0)
	assert.True(t, cookies[0].HttpOnly)
}
