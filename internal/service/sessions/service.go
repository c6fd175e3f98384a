package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/session"
	userRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/user"
	"github.com/m04kA/SMC-CarWashService/internal/service/sessions/models"
)

// Service сервис сессий пользователей
type Service struct {
	sessionRepo   SessionRepository
	userRepo      UserRepository
	activities    ActivityRecorder
	ttl           time.Duration
	touchInterval time.Duration
	logger        Logger
	now           func() time.Time
	newID         func() string
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	sessionRepo SessionRepository,
	userRepo UserRepository,
	activities ActivityRecorder,
	ttl time.Duration,
	touchInterval time.Duration,
	logger Logger,
) *Service {
	return &Service{
		sessionRepo:   sessionRepo,
		userRepo:      userRepo,
		activities:    activities,
		ttl:           ttl,
		touchInterval: touchInterval,
		logger:        logger,
		now:           time.Now,
		newID:         uuid.NewString,
	}
}

// Open создает новую сессию пользователя
func (s *Service) Open(ctx context.Context, userID int64, client domain.ClientInfo) (*domain.Session, error) {
	now := s.now().UTC()

	session := &domain.Session{
		SessionID:  s.newID(),
		UserID:     userID,
		IP:         client.IP,
		Location:   client.Location,
		UserAgent:  client.UserAgent,
		Device:     client.Device,
		Platform:   client.Platform,
		Browser:    client.Browser,
		CreatedAt:  now,
		LastActive: now,
		ExpiresAt:  now.Add(s.ttl),
	}

	created, err := s.sessionRepo.Create(ctx, session)
	if err != nil {
		s.logger.Error("Open: failed to create session for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Open - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Open: session id=%d opened for user=%d, device=%s, ip=%s", created.ID, userID, created.Device, created.IP)
	return created, nil
}

// Authenticate проверяет сессию и возвращает её владельца.
// Время последней активности обновляется не чаще touchInterval.
func (s *Service) Authenticate(ctx context.Context, sessionID string) (*domain.User, *domain.Session, error) {
	if sessionID == "" {
		return nil, nil, ErrSessionNotFound
	}

	session, err := s.sessionRepo.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, nil, ErrSessionNotFound
		}
		s.logger.Error("Authenticate: repository error: %v", err)
		return nil, nil, fmt.Errorf("%w: Authenticate - repository error: %v", ErrInternal, err)
	}

	now := s.now().UTC()
	if !session.IsActive(now) {
		return nil, nil, ErrSessionInactive
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Authenticate: user=%d of session id=%d not found", session.UserID, session.ID)
			return nil, nil, ErrUserNotFound
		}
		s.logger.Error("Authenticate: failed to get user=%d: %v", session.UserID, err)
		return nil, nil, fmt.Errorf("%w: Authenticate - user repository error: %v", ErrInternal, err)
	}

	if session.NeedsTouch(now, s.touchInterval) {
		if err := s.sessionRepo.Touch(ctx, sessionID, now); err != nil {
			s.logger.Warn("Authenticate: failed to touch session id=%d: %v", session.ID, err)
		} else {
			session.LastActive = now
		}
	}

	return user, session, nil
}

// List возвращает активные сессии пользователя, текущая помечена флагом current
func (s *Service) List(ctx context.Context, userID int64, currentSessionID string) ([]models.SessionResponse, error) {
	s.logger.Info("List: fetching sessions for user=%d", userID)

	list, err := s.sessionRepo.ListActiveByUser(ctx, userID, s.now().UTC())
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSessionList(list, currentSessionID), nil
}

// ListForUser возвращает активные сессии произвольного пользователя (для администратора)
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]models.SessionResponse, error) {
	return s.List(ctx, userID, "")
}

// Close завершает сессию при выходе из системы
func (s *Service) Close(ctx context.Context, userID int64, sessionID string) error {
	err := s.sessionRepo.Revoke(ctx, userID, sessionID, s.now().UTC())
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		s.logger.Error("Close: repository error for user=%d: %v", userID, err)
		return fmt.Errorf("%w: Close - repository error: %v", ErrInternal, err)
	}
	return nil
}

// Revoke отзывает одну из сессий пользователя.
// Возвращает true, если отозвана текущая сессия.
func (s *Service) Revoke(ctx context.Context, userID int64, sessionID, currentSessionID string) (bool, error) {
	s.logger.Info("Revoke: user=%d revokes session", userID)

	if err := s.Close(ctx, userID, sessionID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			s.logger.Warn("Revoke: session not found for user=%d", userID)
		}
		return false, err
	}

	current := sessionID == currentSessionID
	s.activities.Record(ctx, domain.NewActivity(userID, domain.ActionSessionRevoke,
		"Session revoked", "Signed out from another device", domain.EntitySession, 0))

	s.logger.Info("Revoke: session revoked for user=%d, current=%t", userID, current)
	return current, nil
}

// RevokeAll отзывает все сессии пользователя, включая текущую
func (s *Service) RevokeAll(ctx context.Context, userID int64) (int64, error) {
	s.logger.Info("RevokeAll: user=%d revokes all sessions", userID)

	revoked, err := s.sessionRepo.RevokeAll(ctx, userID, s.now().UTC())
	if err != nil {
		s.logger.Error("RevokeAll: repository error for user=%d: %v", userID, err)
		return 0, fmt.Errorf("%w: RevokeAll - repository error: %v", ErrInternal, err)
	}

	s.activities.Record(ctx, domain.NewActivity(userID, domain.ActionSessionRevoke,
		"All sessions revoked", fmt.Sprintf("Signed out from %d device(s)", revoked), domain.EntitySession, 0))

	s.logger.Info("RevokeAll: revoked %d sessions for user=%d", revoked, userID)
	return revoked, nil
}

// Purge удаляет сессии, истекшие или отозванные более domain.SessionRetention назад
func (s *Service) Purge(ctx context.Context) (int64, error) {
	before := s.now().UTC().Add(-domain.SessionRetention)

	purged, err := s.sessionRepo.PurgeStale(ctx, before)
	if err != nil {
		s.logger.Error("Purge: repository error: %v", err)
		return 0, fmt.Errorf("%w: Purge - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Purge: removed %d stale sessions", purged)
	return purged, nil
}
