package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	userRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/user"
	"github.com/m04kA/SMC-CarWashService/internal/service/auth/models"
	"github.com/m04kA/SMC-CarWashService/pkg/filestore"
	"github.com/m04kA/SMC-CarWashService/pkg/password"
	"github.com/m04kA/SMC-CarWashService/pkg/ptr"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

const (
	methodPassword = "password"
	methodGoogle   = "google"
	resultSuccess  = "success"
	resultFailure  = "failure"
)

// Service сервис аутентификации и профиля пользователя
type Service struct {
	userRepo   UserRepository
	hasher     PasswordHasher
	google     GoogleVerifier
	sessions   SessionManager
	images     ImageStore
	activities ActivityRecorder
	metrics    Metrics
	validator  *validation.Validator
	logger     Logger
}

// NewService создает новый экземпляр сервиса аутентификации.
// metrics может быть nil, если метрики отключены.
func NewService(
	userRepo UserRepository,
	hasher PasswordHasher,
	google GoogleVerifier,
	sessions SessionManager,
	images ImageStore,
	activities ActivityRecorder,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		userRepo:   userRepo,
		hasher:     hasher,
		google:     google,
		sessions:   sessions,
		images:     images,
		activities: activities,
		metrics:    metrics,
		validator:  validation.New(),
		logger:     logger,
	}
}

// Register регистрирует пользователя по username и паролю и открывает сессию
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest, client domain.ClientInfo) (*models.AuthResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	s.logger.Info("Register: username=%s", req.Username)

	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("Register: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	exists, err := s.userRepo.UsernameExists(ctx, req.Username)
	if err != nil {
		s.logger.Error("Register: failed to check username=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}
	if exists {
		s.logger.Warn("Register: username=%s already taken", req.Username)
		return nil, ErrUsernameTaken
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: Register - hash password: %v", ErrInternal, err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Username:     req.Username,
		Role:         domain.RoleUser,
		Provider:     domain.ProviderLocal,
		PasswordHash: &hash,
	})
	if err != nil {
		if errors.Is(err, userRepo.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		s.logger.Error("Register: failed to create user=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: Register - repository error: %v", ErrInternal, err)
	}

	result, err := s.openSession(ctx, "Register", user, client)
	if err != nil {
		return nil, err
	}

	s.activities.Record(ctx, domain.NewActivity(user.ID, domain.ActionRegister,
		"Account created", fmt.Sprintf("Welcome, %s", user.Username), domain.EntityUser, user.ID))

	s.logger.Info("Register: user id=%d registered", user.ID)
	return result, nil
}

// Login выполняет вход по username и паролю
func (s *Service) Login(ctx context.Context, req *models.LoginRequest, client domain.ClientInfo) (*models.AuthResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	s.logger.Info("Login: username=%s, ip=%s", req.Username, client.IP)

	if err := s.validator.Struct(req); err != nil {
		s.observe(methodPassword, resultFailure)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown username=%s", req.Username)
			s.observe(methodPassword, resultFailure)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for username=%s: %v", req.Username, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	// Аккаунт, созданный через Google, не имеет пароля
	if !user.HasPassword() {
		s.logger.Warn("Login: user id=%d has no password", user.ID)
		s.observe(methodPassword, resultFailure)
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(*user.PasswordHash, req.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			s.logger.Warn("Login: wrong password for user id=%d", user.ID)
			s.observe(methodPassword, resultFailure)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: failed to compare password for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - compare password: %v", ErrInternal, err)
	}

	result, err := s.openSession(ctx, "Login", user, client)
	if err != nil {
		return nil, err
	}

	s.observe(methodPassword, resultSuccess)
	s.activities.Record(ctx, domain.NewActivity(user.ID, domain.ActionLogin,
		"Signed in", signInDescription(client), domain.EntitySession, 0))

	s.logger.Info("Login: user id=%d signed in", user.ID)
	return result, nil
}

// LoginGoogle выполняет вход через Google.
// Пользователь ищется по Google ID, затем по email (с привязкой аккаунта), иначе создается.
func (s *Service) LoginGoogle(ctx context.Context, req *models.GoogleLoginRequest, client domain.ClientInfo) (*models.AuthResult, error) {
	s.logger.Info("LoginGoogle: ip=%s", client.IP)

	if err := s.validator.Struct(req); err != nil {
		s.observe(methodGoogle, resultFailure)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	identity, err := s.google.Verify(ctx, req.Credential)
	if err != nil {
		s.logger.Warn("LoginGoogle: credential rejected: %v", err)
		s.observe(methodGoogle, resultFailure)
		return nil, fmt.Errorf("%w: %v", ErrGoogleAuthFailed, err)
	}

	user, err := s.findOrCreateGoogleUser(ctx, identity.Subject, identity.Email, identity.Name, identity.Picture)
	if err != nil {
		return nil, err
	}

	result, err := s.openSession(ctx, "LoginGoogle", user, client)
	if err != nil {
		return nil, err
	}

	s.observe(methodGoogle, resultSuccess)
	s.activities.Record(ctx, domain.NewActivity(user.ID, domain.ActionLogin,
		"Signed in with Google", signInDescription(client), domain.EntitySession, 0))

	s.logger.Info("LoginGoogle: user id=%d signed in", user.ID)
	return result, nil
}

func (s *Service) findOrCreateGoogleUser(ctx context.Context, subject, email, name, picture string) (*domain.User, error) {
	user, err := s.userRepo.GetByGoogleID(ctx, subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		s.logger.Error("LoginGoogle: failed to get user by google id: %v", err)
		return nil, fmt.Errorf("%w: LoginGoogle - repository error: %v", ErrInternal, err)
	}

	user, err = s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Info("LoginGoogle: linking google account to user id=%d", user.ID)
		linked, err := s.userRepo.LinkGoogle(ctx, user.ID, subject)
		if err != nil {
			s.logger.Error("LoginGoogle: failed to link google account to user id=%d: %v", user.ID, err)
			return nil, fmt.Errorf("%w: LoginGoogle - link google: %v", ErrInternal, err)
		}
		return linked, nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		s.logger.Error("LoginGoogle: failed to get user by email: %v", err)
		return nil, fmt.Errorf("%w: LoginGoogle - repository error: %v", ErrInternal, err)
	}

	username, err := s.uniqueUsername(ctx, email)
	if err != nil {
		s.logger.Error("LoginGoogle: failed to pick username for %s: %v", email, err)
		return nil, fmt.Errorf("%w: LoginGoogle - pick username: %v", ErrInternal, err)
	}

	created, err := s.userRepo.Create(ctx, &domain.User{
		Username:     username,
		Email:        ptr.NilIfEmpty(email),
		FullName:     ptr.NilIfEmpty(name),
		ProfileImage: ptr.NilIfEmpty(picture),
		Role:         domain.RoleUser,
		Provider:     domain.ProviderGoogle,
		GoogleID:     &subject,
	})
	if err != nil {
		s.logger.Error("LoginGoogle: failed to create user %s: %v", username, err)
		return nil, fmt.Errorf("%w: LoginGoogle - create user: %v", ErrInternal, err)
	}

	s.activities.Record(ctx, domain.NewActivity(created.ID, domain.ActionRegister,
		"Account created", "Signed up with Google", domain.EntityUser, created.ID))

	s.logger.Info("LoginGoogle: created user id=%d username=%s", created.ID, created.Username)
	return created, nil
}

// Logout завершает текущую сессию
func (s *Service) Logout(ctx context.Context, userID int64, sessionID string) error {
	s.logger.Info("Logout: user=%d", userID)

	if err := s.sessions.Close(ctx, userID, sessionID); err != nil {
		// Сессия уже могла быть отозвана с другого устройства
		s.logger.Warn("Logout: failed to close session for user=%d: %v", userID, err)
	}

	s.activities.Record(ctx, domain.NewActivity(userID, domain.ActionLogout,
		"Signed out", "", domain.EntitySession, 0))
	return nil
}

// Me возвращает данные пользователя
func (s *Service) Me(ctx context.Context, userID int64) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Me: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Me - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainUser(user)
	return &resp, nil
}

// EditProfile обновляет заполненные поля профиля и аватар
func (s *Service) EditProfile(ctx context.Context, userID int64, req *models.EditProfileRequest) (*models.ProfileResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	s.logger.Info("EditProfile: user=%d", userID)

	if err := s.validator.Struct(req); err != nil {
		s.logger.Warn("EditProfile: validation failed for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	current, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("EditProfile: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: EditProfile - repository error: %v", ErrInternal, err)
	}

	update := domain.ProfileUpdate{
		Username: ptr.NilIfEmpty(req.Username),
		Email:    ptr.NilIfEmpty(req.Email),
		FullName: ptr.NilIfEmpty(req.FullName),
	}

	var newImage string
	if req.Image != nil {
		newImage, err = s.images.SaveImage(ctx, domain.ProfileImagesDir, req.Image)
		if err != nil {
			return nil, s.imageError("EditProfile", err)
		}
		update.ProfileImage = &newImage
	}

	updated, err := s.userRepo.UpdateProfile(ctx, userID, update)
	if err != nil {
		s.discardImage(ctx, newImage)
		switch {
		case errors.Is(err, userRepo.ErrUsernameTaken):
			s.logger.Warn("EditProfile: username=%s already taken", req.Username)
			return nil, ErrUsernameTaken
		case errors.Is(err, userRepo.ErrEmailTaken):
			s.logger.Warn("EditProfile: email already in use for user=%d", userID)
			return nil, ErrEmailTaken
		case errors.Is(err, userRepo.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		s.logger.Error("EditProfile: failed to update user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: EditProfile - repository error: %v", ErrInternal, err)
	}

	if newImage != "" && current.ProfileImage != nil {
		s.discardImage(ctx, *current.ProfileImage)
	}

	s.activities.Record(ctx, domain.NewActivity(userID, domain.ActionProfileUpdate,
		"Profile updated", "", domain.EntityUser, userID))

	s.logger.Info("EditProfile: user=%d updated", userID)
	return &models.ProfileResponse{
		Message: "Profile updated successfully",
		User:    models.FromDomainUser(updated),
	}, nil
}

func (s *Service) openSession(ctx context.Context, op string, user *domain.User, client domain.ClientInfo) (*models.AuthResult, error) {
	session, err := s.sessions.Open(ctx, user.ID, client)
	if err != nil {
		s.logger.Error("%s: failed to open session for user id=%d: %v", op, user.ID, err)
		return nil, fmt.Errorf("%w: %s - open session: %v", ErrInternal, op, err)
	}

	return &models.AuthResult{
		User:      models.FromDomainUser(user),
		SessionID: session.SessionID,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func (s *Service) imageError(op string, err error) error {
	switch {
	case errors.Is(err, filestore.ErrUnsupportedType):
		s.logger.Warn("%s: unsupported image type", op)
		return ErrInvalidImage
	case errors.Is(err, filestore.ErrTooLarge):
		s.logger.Warn("%s: image is too large", op)
		return ErrImageTooLarge
	}
	s.logger.Error("%s: failed to save image: %v", op, err)
	return fmt.Errorf("%w: %s - save image: %v", ErrInternal, op, err)
}

// discardImage удаляет загруженный файл; внешние ссылки (аватар Google) пропускаются
func (s *Service) discardImage(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.images.Delete(ctx, path); err != nil && !errors.Is(err, filestore.ErrInvalidPath) {
		s.logger.Warn("failed to delete image %s: %v", path, err)
	}
}

func (s *Service) observe(method, result string) {
	if s.metrics != nil {
		s.metrics.ObserveAuthAttempt(method, result)
	}
}

func signInDescription(client domain.ClientInfo) string {
	if client.Browser == "" && client.Platform == "" {
		return client.IP
	}
	return fmt.Sprintf("%s on %s", client.Browser, client.Platform)
}
