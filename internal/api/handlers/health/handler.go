package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
)

const (
	pingTimeout      = 2 * time.Second
	msgDBUnavailable = "Database unavailable"
	statusOK         = "ok"
)

// Pinger проверка соединения с БД
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Logger interface {
	Error(format string, v ...interface{})
}

type Response struct {
	Status string `json:"status"`
}

type Handler struct {
	db     Pinger
	logger Logger
}

func NewHandler(db Pinger, logger Logger) *Handler {
	return &Handler{
		db:     db,
		logger: logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error("GET /health - Database ping failed: %v", err)
		handlers.RespondError(w, http.StatusServiceUnavailable, msgDBUnavailable)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{Status: statusOK})
}
