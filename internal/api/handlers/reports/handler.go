package reports

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	reportService "github.com/m04kA/SMC-CarWashService/internal/service/reports"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

const (
	msgNotAuthenticated = "Not authenticated"
	msgInvalidDays      = "days must be a number"
	msgInvalidPeriod    = "Invalid report period"
)

type Handler struct {
	service ReportService
	logger  Logger
}

func NewHandler(service ReportService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Daily GET /reports/daily?days=7
func (h *Handler) Daily(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	// Период по умолчанию только при отсутствии параметра; явный 0 отклоняет сервис
	days := domain.DefaultReportDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		days = v
	}

	report, err := h.service.Daily(r.Context(), actor, days)
	if err != nil {
		if errors.Is(err, reportService.ErrInvalidInput) {
			h.logger.Warn("GET /reports/daily - Invalid period: days=%d", days)
			handlers.RespondBadRequest(w, validation.Message(err, msgInvalidPeriod))
			return
		}
		h.logger.Error("GET /reports/daily - Failed to build report: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

// Summary GET /reports/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	summary, err := h.service.Summary(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /reports/summary - Failed to build summary: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, summary)
}
