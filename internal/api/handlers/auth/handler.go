package auth

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
	"github.com/m04kA/SMC-CarWashService/internal/api/middleware"
	authService "github.com/m04kA/SMC-CarWashService/internal/service/auth"
	"github.com/m04kA/SMC-CarWashService/internal/service/auth/models"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

const (
	msgInvalidRequestBody = "Invalid request body"
	msgInvalidInput       = "Invalid input data"
	msgUsernameTaken      = "Username already taken"
	msgEmailTaken         = "Email already in use"
	msgInvalidCredentials = "Invalid username or password"
	msgGoogleAuthFailed   = "Google authentication failed"
	msgNotAuthenticated   = "Not authenticated"
	msgUserNotFound       = "User not found"
	msgInvalidImage       = "Only jpeg, png, gif and webp images are allowed"
	msgImageTooLarge      = "Image is too large"
	msgLoggedOut          = "Logged out successfully"
)

type Handler struct {
	service AuthService
	cookie  SessionCookie
	logger  Logger
}

func NewHandler(service AuthService, cookie SessionCookie, logger Logger) *Handler {
	return &Handler{
		service: service,
		cookie:  cookie,
		logger:  logger,
	}
}

// Register POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Register(r.Context(), &req, middleware.ClientInfo(r))
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidInput):
			h.logger.Warn("POST /auth/register - Invalid input: %v", err)
			handlers.RespondBadRequest(w, validation.Message(err, msgInvalidInput))
		case errors.Is(err, authService.ErrUsernameTaken):
			h.logger.Warn("POST /auth/register - Username taken: username=%s", req.Username)
			handlers.RespondConflict(w, msgUsernameTaken)
		default:
			h.logger.Error("POST /auth/register - Failed to register: username=%s, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !h.startSession(w, r, "POST /auth/register", result) {
		return
	}

	h.logger.Info("POST /auth/register - User registered: user_id=%d", result.User.ID)
	handlers.RespondJSON(w, http.StatusCreated, result.User)
}

// Login POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Login(r.Context(), &req, middleware.ClientInfo(r))
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidInput):
			handlers.RespondBadRequest(w, validation.Message(err, msgInvalidInput))
		case errors.Is(err, authService.ErrInvalidCredentials):
			h.logger.Warn("POST /auth/login - Invalid credentials: username=%s", req.Username)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
		default:
			h.logger.Error("POST /auth/login - Failed to login: username=%s, error=%v", req.Username, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !h.startSession(w, r, "POST /auth/login", result) {
		return
	}

	h.logger.Info("POST /auth/login - User logged in: user_id=%d", result.User.ID)
	handlers.RespondJSON(w, http.StatusOK, result.User)
}

// LoginGoogle POST /auth/login/google
func (h *Handler) LoginGoogle(w http.ResponseWriter, r *http.Request) {
	var req models.GoogleLoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login/google - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.LoginGoogle(r.Context(), &req, middleware.ClientInfo(r))
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidInput):
			handlers.RespondBadRequest(w, validation.Message(err, msgInvalidInput))
		case errors.Is(err, authService.ErrGoogleAuthFailed):
			h.logger.Warn("POST /auth/login/google - Google credential rejected: %v", err)
			handlers.RespondUnauthorized(w, msgGoogleAuthFailed)
		default:
			h.logger.Error("POST /auth/login/google - Failed to login: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !h.startSession(w, r, "POST /auth/login/google", result) {
		return
	}

	h.logger.Info("POST /auth/login/google - User logged in: user_id=%d", result.User.ID)
	handlers.RespondJSON(w, http.StatusOK, result.User)
}

// Logout POST /auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	if err := h.service.Logout(r.Context(), userID, middleware.GetSessionID(r.Context())); err != nil {
		h.logger.Error("POST /auth/logout - Failed to logout: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	if err := h.cookie.Clear(w, r); err != nil {
		h.logger.Warn("POST /auth/logout - Failed to clear cookie: %v", err)
	}

	h.logger.Info("POST /auth/logout - User logged out: user_id=%d", userID)
	handlers.RespondMessage(w, msgLoggedOut)
}

// Me GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	user, err := h.service.Me(r.Context(), userID)
	if err != nil {
		if errors.Is(err, authService.ErrUserNotFound) {
			h.logger.Warn("GET /auth/me - User not found: user_id=%d", userID)
			handlers.RespondUnauthorized(w, msgNotAuthenticated)
			return
		}
		h.logger.Error("GET /auth/me - Failed to get user: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, user)
}

// EditProfile PUT /auth/edit-profile (multipart)
func (h *Handler) EditProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgNotAuthenticated)
		return
	}

	if err := handlers.ParseForm(r); err != nil {
		h.logger.Warn("PUT /auth/edit-profile - Invalid form: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Фронтенд отправляет файл в поле profile, в API он описан как profileImage
	image, err := handlers.FormFile(r, "profile", "profileImage")
	if err != nil {
		h.logger.Warn("PUT /auth/edit-profile - Invalid image: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	req := models.EditProfileRequest{
		Username: r.FormValue("username"),
		Email:    r.FormValue("email"),
		FullName: r.FormValue("fullName"),
	}
	if image != nil {
		defer image.Close()
		req.Image = image
	}

	resp, err := h.service.EditProfile(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrInvalidInput):
			h.logger.Warn("PUT /auth/edit-profile - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, validation.Message(err, msgInvalidInput))
		case errors.Is(err, authService.ErrUsernameTaken):
			handlers.RespondConflict(w, msgUsernameTaken)
		case errors.Is(err, authService.ErrEmailTaken):
			handlers.RespondConflict(w, msgEmailTaken)
		case errors.Is(err, authService.ErrInvalidImage):
			handlers.RespondBadRequest(w, msgInvalidImage)
		case errors.Is(err, authService.ErrImageTooLarge):
			handlers.RespondBadRequest(w, msgImageTooLarge)
		case errors.Is(err, authService.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)
		default:
			h.logger.Error("PUT /auth/edit-profile - Failed to update profile: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /auth/edit-profile - Profile updated: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// startSession записывает cookie новой сессии
func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, route string, result *models.AuthResult) bool {
	if err := h.cookie.Write(w, r, result.SessionID, result.ExpiresAt); err != nil {
		h.logger.Error("%s - Failed to write session cookie: user_id=%d, error=%v", route, result.User.ID, err)
		handlers.RespondInternalError(w)
		return false
	}
	return true
}
