package sessions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	sessionService "github.com/m04kA/SMC-CarWashService/internal/service/sessions"
	"github.com/m04kA/SMC-CarWashService/internal/service/sessions/models"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

type fakeService struct {
	sessions map[string]int64
	err      error
}

func (f *fakeService) List(_ context.Context, userID int64, current string) ([]models.SessionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	list := make([]models.SessionResponse, 0)
	for sid, owner := range f.sessions {
		if owner == userID {
			list = append(list, models.SessionResponse{SessionID: sid, Current: sid == current})
		}
	}
	return list, nil
}

func (f *fakeService) Revoke(_ context.Context, userID int64, sessionID, current string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if owner, ok := f.sessions[sessionID]; !ok || owner != userID {
		return false, sessionService.ErrSessionNotFound
	}
	delete(f.sessions, sessionID)
	return sessionID == current, nil
}

func (f *fakeService) RevokeAll(_ context.Context, userID int64) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var n int64
	for sid, owner := range f.sessions {
		if owner == userID {
			delete(f.sessions, sid)
			n++
		}
	}
	return n, nil
}

type fakeCookie struct {
	cleared int
}

func (f *fakeCookie) Clear(http.ResponseWriter, *http.Request) error {
	f.cleared++
	return nil
}

const (
	currentSID = "5f0c1c9e-8b7a-4d3e-9a51-0d2f4c6b8e01"
	phoneSID   = "a3e9d2b4-1c6f-4e8a-b7d0-3f5c9e2a4b12"
	otherSID   = "c7b1e5f3-9d2a-4b6c-8e0f-1a3d5c7e9b23"
)

func newFixture() (*Handler, *fakeService, *fakeCookie) {
	svc := &fakeService{sessions: map[string]int64{currentSID: 7, phoneSID: 7, otherSID: 8}}
	cookie := &fakeCookie{}
	return NewHandler(svc, cookie, logger.NewNop()), svc, cookie
}

func request(method, target string, vars map[string]string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	r = r.WithContext(middleware.WithAuth(r.Context(), &domain.User{ID: 7, Role: domain.RoleUser}, currentSID))
	if vars != nil {
		r = mux.SetURLVars(r, vars)
	}
	return r
}

func TestHandler_List(t *testing.T) {
	h, _, _ := newFixture()

	rec := httptest.NewRecorder()
	h.List(rec, request(http.MethodGet, "/auth/sessions", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"current":true`)
	assert.NotContains(t, rec.Body.String(), otherSID)
}

func TestHandler_Revoke(t *testing.T) {
	t.Run("another device keeps cookie", func(t *testing.T) {
		h, svc, cookie := newFixture()

		rec := httptest.NewRecorder()
		h.Revoke(rec, request(http.MethodDelete, "/auth/sessions/"+phoneSID, map[string]string{"sessionId": phoneSID}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, svc.sessions, phoneSID)
		assert.Equal(t, 0, cookie.cleared)
	})

	t.Run("current session clears cookie", func(t *testing.T) {
		h, _, cookie := newFixture()

		rec := httptest.NewRecorder()
		h.Revoke(rec, request(http.MethodDelete, "/auth/sessions/"+currentSID, map[string]string{"sessionId": currentSID}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, cookie.cleared)
	})

	t.Run("foreign session is not found", func(t *testing.T) {
		h, svc, _ := newFixture()

		rec := httptest.NewRecorder()
		h.Revoke(rec, request(http.MethodDelete, "/auth/sessions/"+otherSID, map[string]string{"sessionId": otherSID}))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"code":404,"message":"Session not found"}`, rec.Body.String())
		assert.Contains(t, svc.sessions, otherSID)
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		for _, id := range []string{"phone", "' OR 1=1 --", "5f0c1c9e-8b7a-4d3e-9a51", ""} {
			h, svc, _ := newFixture()
			svc.err = errors.New("service must not be called")

			rec := httptest.NewRecorder()
			h.Revoke(rec, request(http.MethodDelete, "/auth/sessions/x", map[string]string{"sessionId": id}))

			assert.Equal(t, http.StatusNotFound, rec.Code, id)
			assert.JSONEq(t, `{"code":404,"message":"Session not found"}`, rec.Body.String())
			assert.Len(t, svc.sessions, 3)
		}
	})

	t.Run("upper-case id is normalized", func(t *testing.T) {
		h, svc, _ := newFixture()

		rec := httptest.NewRecorder()
		h.Revoke(rec, request(http.MethodDelete, "/auth/sessions/x", map[string]string{"sessionId": strings.ToUpper(phoneSID)}))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotContains(t, svc.sessions, phoneSID)
	})
}

func TestHandler_RevokeAll(t *testing.T) {
	h, svc, cookie := newFixture()

	rec := httptest.NewRecorder()
	h.RevokeAll(rec, request(http.MethodDelete, "/auth/sessions", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"All sessions revoked successfully","revoked":2}`, rec.Body.String())
	assert.Equal(t, 1, cookie.cleared)
	assert.Equal(t, map[string]int64{otherSID: 8}, svc.sessions)

	t.Run("service failure", func(t *testing.T) {
		h, svc, _ := newFixture()
		svc.err = errors.New("db down")

		rec := httptest.NewRecorder()
		h.RevokeAll(rec, request(http.MethodDelete, "/auth/sessions", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
