package activities

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgInvalidLimit     = "limit must be a number"
)

type Handler struct {
	service ActivityService
	logger  Logger
}

func NewHandler(service ActivityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /activities?limit=50
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	// Лимит вне диапазона приводится к допустимому в сервисе
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.logger.Warn("GET /activities - Invalid limit: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		limit = v
	}

	list, err := h.service.List(r.Context(), actor, limit)
	if err != nil {
		h.logger.Error("GET /activities - Failed to list activities: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
