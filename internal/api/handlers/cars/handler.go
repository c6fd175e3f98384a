package cars

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	"github.com/m04kA/SMC-CarWashService/internal/domain"
	carService "github.com/m04kA/SMC-CarWashService/internal/service/cars"
	"github.com/m04kA/SMC-CarWashService/internal/service/cars/models"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

const (
	msgNotAuthenticated   = "Not authenticated"
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidCarID       = "Invalid car id"
	msgInvalidInput       = "Invalid car data"
	msgCarNotFound        = "Car not found"
	msgAccessDenied       = "You do not have access to this car"
	msgPlateTaken         = "Plate number already registered"
	msgCarInUse           = "Car has service records and cannot be deleted"
	msgInvalidImage       = "Only jpeg, png, gif and webp images are allowed"
	msgImageTooLarge      = "Image is too large"
	msgCarDeleted         = "Car deleted successfully"
)

// imageField поле формы с фотографией автомобиля
const imageField = "image"

type Handler struct {
	service CarService
	logger  Logger
}

func NewHandler(service CarService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /car
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	list, err := h.service.List(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /car - Failed to list cars: user_id=%d, error=%v", actor.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Get GET /car/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	car, err := h.service.GetByID(r.Context(), actor, id)
	if err != nil {
		h.respondError(w, "GET /car/{id}", actor, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, car)
}

// Create POST /car (multipart)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	req, closeImage, err := parseCarForm(r)
	if err != nil {
		h.logger.Warn("POST /car - Invalid form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	defer closeImage()

	car, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		h.respondError(w, "POST /car", actor, err)
		return
	}

	h.logger.Info("POST /car - Car created: car_id=%d, user_id=%d", car.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, car)
}

// Update PUT /car/{id} (multipart)
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	req, closeImage, err := parseCarForm(r)
	if err != nil {
		h.logger.Warn("PUT /car/%d - Invalid form: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	defer closeImage()

	car, err := h.service.Update(r.Context(), actor, id, req)
	if err != nil {
		h.respondError(w, "PUT /car/{id}", actor, err)
		return
	}

	h.logger.Info("PUT /car/%d - Car updated: user_id=%d", id, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, car)
}

// Delete DELETE /car/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCarID)
		return
	}

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		h.respondError(w, "DELETE /car/{id}", actor, err)
		return
	}

	h.logger.Info("DELETE /car/%d - Car deleted: user_id=%d", id, actor.UserID)
	handlers.RespondMessage(w, msgCarDeleted)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, actor domain.Actor, err error) {
	switch {
	case errors.Is(err, carService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: user_id=%d, error=%v", route, actor.UserID, err)
		handlers.RespondBadRequest(w, validation.Message(err, msgInvalidInput))
	case errors.Is(err, carService.ErrCarNotFound):
		h.logger.Warn("%s - Car not found: user_id=%d", route, actor.UserID)
		handlers.RespondNotFound(w, msgCarNotFound)
	case errors.Is(err, carService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: user_id=%d", route, actor.UserID)
		handlers.RespondForbidden(w, msgAccessDenied)
	case errors.Is(err, carService.ErrPlateTaken):
		handlers.RespondConflict(w, msgPlateTaken)
	case errors.Is(err, carService.ErrCarInUse):
		handlers.RespondConflict(w, msgCarInUse)
	case errors.Is(err, carService.ErrInvalidImage):
		handlers.RespondBadRequest(w, msgInvalidImage)
	case errors.Is(err, carService.ErrImageTooLarge):
		handlers.RespondBadRequest(w, msgImageTooLarge)
	default:
		h.logger.Error("%s - Internal error: user_id=%d, error=%v", route, actor.UserID, err)
		handlers.RespondInternalError(w)
	}
}

// parseCarForm читает поля формы автомобиля; возвращаемая функция закрывает файл изображения
func parseCarForm(r *http.Request) (*models.CarRequest, func(), error) {
	if err := handlers.ParseForm(r); err != nil {
		return nil, nil, err
	}

	image, err := handlers.FormFile(r, imageField)
	if err != nil {
		return nil, nil, err
	}

	req := &models.CarRequest{
		PlateNumber: r.FormValue("plateNumber"),
		CarType:     r.FormValue("carType"),
		CarSize:     r.FormValue("carSize"),
		DriverName:  r.FormValue("driverName"),
		PhoneNumber: r.FormValue("phoneNumber"),
	}

	closeImage := func() {}
	if image != nil {
		req.Image = image
		closeImage = func() { _ = image.Close() }
	}
	return req, closeImage, nil
}
