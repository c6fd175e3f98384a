package packages

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	packageService "github.com/m04kA/SMC-CarWashService/internal/service/packages"
	"github.com/m04kA/SMC-CarWashService/internal/service/packages/models"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

const (
	msgNotAuthenticated   = "Not authenticated"
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidPackageID   = "Invalid package id"
	msgInvalidInput       = "Invalid package data"
	msgPackageNotFound    = "Package not found"
	msgAccessDenied       = "You do not have access to this package"
	msgNumberTaken        = "Package number already exists"
	msgPackageInUse       = "Package has service records and cannot be deleted"
	msgPriceBelowPaid     = "Package price is below the amount already paid for its service records"
	msgPackageDeleted     = "Package deleted successfully"
)

type Handler struct {
	service PackageService
	logger  Logger
}

func NewHandler(service PackageService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /package
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	list, err := h.service.List(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /package - Failed to list packages: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Get GET /package/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}

	pkg, err := h.service.GetByID(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, "GET /package/{id}", actor, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, pkg)
}

// Create POST /package
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	var req models.PackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /package - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	pkg, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		h.respondError(w, "POST /package", actor, err)
		return
	}

	h.logger.Info("POST /package - Package created: package_id=%d, user_id=%d", pkg.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, pkg)
}

// Update PUT /package/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}

	var req models.PackageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /package/%d - Invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	pkg, err := h.service.Update(r.Context(), actor, id, &req)
	if err != nil {
		h.respondError(w, "PUT /package/{id}", actor, err)
		return
	}

	h.logger.Info("PUT /package/%d - Package updated: user_id=%d", id, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, pkg)
}

// Delete DELETE /package/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidPackageID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, "DELETE /package/{id}", actor, err)
		return
	}

	h.logger.Info("DELETE /package/%d - Package deleted: user_id=%d", id, actor.UserID)
	handlers.RespondMessage(w, msgPackageDeleted)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, actor domain.Actor, err error) {
	switch {
	case errors.Is(err, packageService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: user_id=%d, error=%v", route, actor.UserID, err)
		handlers.RespondBadRequest(w, validation.Message(err, msgInvalidInput))
	case errors.Is(err, packageService.ErrPackageNotFound):
		h.logger.Warn("%s - Package not found: user_id=%d", route, actor.UserID)
		handlers.RespondNotFound(w, msgPackageNotFound)
	case errors.Is(err, packageService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: user_id=%d", route, actor.UserID)
		handlers.RespondForbidden(w, msgAccessDenied)
	case errors.Is(err, packageService.ErrNumberTaken):
		handlers.RespondConflict(w, msgNumberTaken)
	case errors.Is(err, packageService.ErrPackageInUse):
		handlers.RespondConflict(w, msgPackageInUse)
	case errors.Is(err, packageService.ErrPriceBelowPaid):
		h.logger.Warn("%s - Price below paid amount: user_id=%d", route, actor.UserID)
		handlers.RespondConflict(w, msgPriceBelowPaid)
	default:
		h.logger.Error("%s - Internal error: user_id=%d, error=%v", route, actor.UserID, err)
		handlers.RespondInternalError(w)
	}
}
