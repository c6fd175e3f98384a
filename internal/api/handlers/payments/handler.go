package payments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	paymentService "github.com/m04kA/SMC-CarWashService/internal/service/payments"
	"github.com/m04kA/SMC-CarWashService/internal/service/payments/models"
	recordPayment "github.com/m04kA/SMC-CarWashService/internal/usecase/record_payment"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

const (
	msgNotAuthenticated   = "Not authenticated"
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidPaymentID   = "Invalid payment id"
	msgInvalidDate        = "Invalid payment date, expected YYYY-MM-DD"
	msgInvalidInput       = "Invalid payment data"
	msgInvalidStatus      = "Status must be one of: completed, pending, failed"
	msgRecordNotFound     = "Service record not found"
	msgPaymentNotFound    = "Payment not found"
	msgAccessDenied       = "You do not have access to this payment"
	msgNumberTaken        = "Payment number already exists"
	msgExceedsBalance     = "Payment exceeds outstanding balance"
	msgPaymentDeleted     = "Payment deleted successfully"
)

type Handler struct {
	recordUseCase RecordPaymentUseCase
	service       PaymentService
	logger        Logger
}

func NewHandler(recordUseCase RecordPaymentUseCase, service PaymentService, logger Logger) *Handler {
	return &Handler{
		recordUseCase: recordUseCase,
		service:       service,
		logger:        logger,
	}
}

// List GET /payment
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	list, err := h.service.List(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /payment - Failed to list payments: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Get GET /payment/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	payment, err := h.service.GetByID(r.Context(), actor, id)
	if err != nil {
		h.respondServiceError(w, "GET /payment/{id}", actor, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, payment)
}

// Create POST /payment
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	var req PaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /payment - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.recordUseCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, recordPayment.ErrInvalidInput):
			h.logger.Warn("POST /payment - Invalid input: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondBadRequest(w, validation.Message(err, msgInvalidInput))

		case errors.Is(err, recordPayment.ErrRecordNotFound):
			h.logger.Warn("POST /payment - Service record not found: user_id=%d, record_id=%d", actor.UserID, req.ServicePackage)
			handlers.RespondNotFound(w, msgRecordNotFound)

		case errors.Is(err, recordPayment.ErrExceedsBalance):
			h.logger.Warn("POST /payment - Exceeds balance: user_id=%d, record_id=%d, amount=%.2f",
				actor.UserID, req.ServicePackage, req.AmountPaid)
			handlers.RespondConflict(w, msgExceedsBalance)

		case errors.Is(err, recordPayment.ErrNumberTaken):
			handlers.RespondConflict(w, msgNumberTaken)

		default:
			h.logger.Error("POST /payment - Failed to record payment: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payment - Payment recorded: payment_id=%d, user_id=%d", result.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// UpdateStatus PATCH /payment/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	var req models.UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /payment/%d/status - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	payment, err := h.service.UpdateStatus(r.Context(), actor, id, &req)
	if err != nil {
		h.respondServiceError(w, "PATCH /payment/{id}/status", actor, err)
		return
	}

	h.logger.Info("PATCH /payment/%d/status - Status changed to %s: user_id=%d", id, payment.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, payment)
}

// Delete DELETE /payment/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondServiceError(w, "DELETE /payment/{id}", actor, err)
		return
	}

	h.logger.Info("DELETE /payment/%d - Payment deleted: user_id=%d", id, actor.UserID)
	handlers.RespondMessage(w, msgPaymentDeleted)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, actor domain.Actor, err error) {
	switch {
	case errors.Is(err, paymentService.ErrInvalidStatus):
		handlers.RespondBadRequest(w, msgInvalidStatus)
	case errors.Is(err, paymentService.ErrPaymentNotFound):
		h.logger.Warn("%s - Payment not found: user_id=%d", route, actor.UserID)
		handlers.RespondNotFound(w, msgPaymentNotFound)
	case errors.Is(err, paymentService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: user_id=%d", route, actor.UserID)
		handlers.RespondForbidden(w, msgAccessDenied)
	case errors.Is(err, paymentService.ErrExceedsBalance):
		handlers.RespondConflict(w, msgExceedsBalance)
	default:
		h.logger.Error("%s - Internal error: user_id=%d, error=%v", route, actor.UserID, err)
		handlers.RespondInternalError(w)
	}
}
