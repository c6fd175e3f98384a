package service_records

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	recordService "github.com/m04kA/SMC-CarWashService/internal/service/servicerecords"
	createServiceRecord "github.com/m04kA/SMC-CarWashService/internal/usecase/create_service_record"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

const (
	msgNotAuthenticated   = "Not authenticated"
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidRecordID    = "Invalid service record id"
	msgInvalidDate        = "Invalid service date, expected YYYY-MM-DD"
	msgInvalidInput       = "Service date, car and package are required"
	msgRecordNotFound     = "Service record not found"
	msgAccessDenied       = "You do not have access to this service record"
	msgCarNotFound        = "Car not found"
	msgPackageNotFound    = "Package not found"
	msgNumberTaken        = "Record number already exists"
	msgDateInFuture       = "Service date cannot be more than one day in the future"
	msgRecordInUse        = "Service record has payments and cannot be deleted"
	msgExceedsBalance     = "Payment exceeds outstanding balance"
	msgRecordDeleted      = "Service record deleted successfully"
)

type Handler struct {
	createUseCase CreateServiceRecordUseCase
	service       RecordService
	logger        Logger
}

func NewHandler(createUseCase CreateServiceRecordUseCase, service RecordService, logger Logger) *Handler {
	return &Handler{
		createUseCase: createUseCase,
		service:       service,
		logger:        logger,
	}
}

// List GET /service-package
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	list, err := h.service.List(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /service-package - Failed to list records: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Get GET /service-package/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRecordID)
		return
	}

	record, err := h.service.GetByID(r.Context(), actor, id)
	if err != nil {
		h.respondServiceError(w, "GET /service-package/{id}", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, record)
}

// Create POST /service-package
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	var req RecordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /service-package - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToCreateRequest(actor)
	if err != nil {
		h.logger.Warn("POST /service-package - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.createUseCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createServiceRecord.ErrInvalidInput):
			h.logger.Warn("POST /service-package - Invalid input: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, validation.Message(err, msgInvalidInput))

		case errors.Is(err, createServiceRecord.ErrServiceDateInFuture):
			h.logger.Warn("POST /service-package - Service date in future: user_id=%d, date=%s", actor.UserID, req.ServiceDate)
			handlers.RespondBadRequest(w, msgDateInFuture)

		case errors.Is(err, createServiceRecord.ErrCarNotFound):
			h.logger.Warn("POST /service-package - Car not found: user_id=%d, car_id=%d", actor.UserID, req.Car)
			handlers.RespondNotFound(w, msgCarNotFound)

		case errors.Is(err, createServiceRecord.ErrPackageNotFound):
			h.logger.Warn("POST /service-package - Package not found: user_id=%d, package_id=%d", actor.UserID, req.Package)
			handlers.RespondNotFound(w, msgPackageNotFound)

		case errors.Is(err, createServiceRecord.ErrNumberTaken):
			handlers.RespondConflict(w, msgNumberTaken)

		default:
			h.logger.Error("POST /service-package - Failed to create record: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /service-package - Record created: record_id=%d, user_id=%d", result.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /service-package/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRecordID)
		return
	}

	var req RecordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /service-package/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToUpdateRequest()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	record, err := h.service.Update(r.Context(), actor, id, serviceReq)
	if err != nil {
		h.respondServiceError(w, "PUT /service-package/{id}", err)
		return
	}

	h.logger.Info("PUT /service-package/%d - Record updated: user_id=%d", id, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, record)
}

// Delete DELETE /service-package/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRecordID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondServiceError(w, "DELETE /service-package/{id}", err)
		return
	}

	h.logger.Info("DELETE /service-package/%d - Record deleted: user_id=%d", id, actor.UserID)
	handlers.RespondMessage(w, msgRecordDeleted)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, recordService.ErrInvalidInput):
		handlers.RespondBadRequest(w, validation.Message(err, msgInvalidInput))
	case errors.Is(err, recordService.ErrServiceDateInFuture):
		handlers.RespondBadRequest(w, msgDateInFuture)
	case errors.Is(err, recordService.ErrRecordNotFound):
		h.logger.Warn("%s - Record not found", route)
		handlers.RespondNotFound(w, msgRecordNotFound)
	case errors.Is(err, recordService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied", route)
		handlers.RespondForbidden(w, msgAccessDenied)
	case errors.Is(err, recordService.ErrCarNotFound):
		handlers.RespondNotFound(w, msgCarNotFound)
	case errors.Is(err, recordService.ErrPackageNotFound):
		handlers.RespondNotFound(w, msgPackageNotFound)
	case errors.Is(err, recordService.ErrNumberTaken):
		handlers.RespondConflict(w, msgNumberTaken)
	case errors.Is(err, recordService.ErrRecordInUse):
		handlers.RespondConflict(w, msgRecordInUse)
	case errors.Is(err, recordService.ErrExceedsBalance):
		h.logger.Warn("%s - Paid amount exceeds new package price", route)
		handlers.RespondConflict(w, msgExceedsBalance)
	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
