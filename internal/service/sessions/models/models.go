package models

import (
	"time"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
)

// SessionResponse активная сессия пользователя
type SessionResponse struct {
	ID         int64   `json:"_id"`
	SessionID  string  `json:"sessionId"`
	IP         string  `json:"ip"`
	Location   *string `json:"location,omitempty"`
	UserAgent  string  `json:"userAgent"`
	Device     string  `json:"device"`
	Platform   string  `json:"platform"`
	Browser    string  `json:"browser"`
	CreatedAt  string  `json:"createdAt"`
	LastActive string  `json:"lastActive"`
	ExpiresAt  string  `json:"expiresAt"`
	Current    bool    `json:"current"`
}

// RevokeAllResponse результат выхода со всех устройств
type RevokeAllResponse struct {
	Message string `json:"message"`
	Revoked int64  `json:"revoked"`
}

// FromDomainSession конвертирует domain.Session в SessionResponse
func FromDomainSession(s *domain.Session, currentSessionID string) SessionResponse {
	return SessionResponse{
		ID:         s.ID,
		SessionID:  s.SessionID,
		IP:         s.IP,
		Location:   s.Location,
		UserAgent:  s.UserAgent,
		Device:     s.Device,
		Platform:   s.Platform,
		Browser:    s.Browser,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
		LastActive: s.LastActive.Format(time.RFC3339),
		ExpiresAt:  s.ExpiresAt.Format(time.RFC3339),
		Current:    currentSessionID != "" && s.SessionID == currentSessionID,
	}
}

// FromDomainSessionList конвертирует список сессий
func FromDomainSessionList(list []*domain.Session, currentSessionID string) []SessionResponse {
	result := make([]SessionResponse, 0, len(list))
	for _, s := range list {
		result = append(result, FromDomainSession(s, currentSessionID))
	}
	return result
}
