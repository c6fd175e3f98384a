package sessions

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	sessionService "github.com/m04kA/SMC-CarWashService/internal/service/sessions"
	"github.com/m04kA/SMC-CarWashService/internal/service/sessions/models"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgSessionNotFound  = "Session not found"
	msgSessionRevoked   = "Session revoked successfully"
	msgSessionsRevoked  = "All sessions revoked successfully"
)

type Handler struct {
	service SessionService
	cookie  CookieCleaner
	logger  Logger
}

func NewHandler(service SessionService, cookie CookieCleaner, logger Logger) *Handler {
	return &Handler{
		service: service,
		cookie:  cookie,
		logger:  logger,
	}
}

// List GET /auth/sessions
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	list, err := h.service.List(r.Context(), userID, middleware.GetSessionID(r.Context()))
	if err != nil {
		h.logger.Error("GET /auth/sessions - Failed to list sessions: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Revoke DELETE /auth/sessions/{sessionId}
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	// Идентификатор сессии - UUID; любой другой формат заведомо не существует
	parsed, err := uuid.Parse(strings.TrimSpace(mux.Vars(r)["sessionId"]))
	if err != nil {
		h.logger.Warn("DELETE /auth/sessions/{sessionId} - Malformed session id: user_id=%d", userID)
		handlers.RespondNotFound(w, msgSessionNotFound)
		return
	}
	sessionID := parsed.String()

	current, err := h.service.Revoke(r.Context(), userID, sessionID, middleware.GetSessionID(r.Context()))
	if err != nil {
		if errors.Is(err, sessionService.ErrSessionNotFound) {
			h.logger.Warn("DELETE /auth/sessions/%s - Session not found: user_id=%d", sessionID, userID)
			handlers.RespondNotFound(w, msgSessionNotFound)
			return
		}
		h.logger.Error("DELETE /auth/sessions/%s - Failed to revoke session: user_id=%d, error=%v", sessionID, userID, err)
		handlers.RespondInternalError(w)
		return
	}

	if current {
		if err := h.cookie.Clear(w, r); err != nil {
			h.logger.Warn("DELETE /auth/sessions/%s - Failed to clear cookie: %v", sessionID, err)
		}
	}

	h.logger.Info("DELETE /auth/sessions/%s - Session revoked: user_id=%d, current=%t", sessionID, userID, current)
	handlers.RespondMessage(w, msgSessionRevoked)
}

// RevokeAll DELETE /auth/sessions
func (h *Handler) RevokeAll(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	revoked, err := h.service.RevokeAll(r.Context(), userID)
	if err != nil {
		h.logger.Error("DELETE /auth/sessions - Failed to revoke sessions: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	if err := h.cookie.Clear(w, r); err != nil {
		h.logger.Warn("DELETE /auth/sessions - Failed to clear cookie: %v", err)
	}

	h.logger.Info("DELETE /auth/sessions - Sessions revoked: user_id=%d, count=%d", userID, revoked)
	handlers.RespondJSON(w, http.StatusOK, models.RevokeAllResponse{
		Message: msgSessionsRevoked,
		Revoked: revoked,
	})
}
