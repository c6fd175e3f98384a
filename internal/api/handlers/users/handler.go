package users

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	userService "github.com/m04kA/SMC-CarWashService/internal/service/users"
)

const (
	msgInvalidUserID = "Invalid user id"
	msgUserNotFound  = "User not found"
)

// Handler административные запросы по пользователям. Доступ проверяет middleware RequireAdmin.
type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /auth/admin/users
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /auth/admin/users - Failed to list users: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Details GET /auth/users/{userId}/details
func (h *Handler) Details(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathID(r, "userId")
	if err != nil {
		h.logger.Warn("GET /auth/users/{userId}/details - Invalid user id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	details, err := h.service.Details(r.Context(), userID)
	if err != nil {
		if errors.Is(err, userService.ErrUserNotFound) {
			h.logger.Warn("GET /auth/users/%d/details - User not found", userID)
			handlers.RespondNotFound(w, msgUserNotFound)
			return
		}
		h.logger.Error("GET /auth/users/%d/details - Failed to get details: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, details)
}
