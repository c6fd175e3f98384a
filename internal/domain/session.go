package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Device classes detected from the User-Agent
const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceBot     = "bot"
)

// SessionRetention is how long expired or revoked sessions are kept before purge
const SessionRetention = 7 * 24 * time.Hour

// Session represents a signed-in device of a user
type Session struct {
	ID         int64
	SessionID  string
	UserID     int64
	IP         string
	Location   *string
	UserAgent  string
	Device     string
	Platform   string
	Browser    string
	CreatedAt  time.Time
	LastActive time.Time
	ExpiresAt  time.Time
	RevokedAt  *time.Time
}

// IsActive returns true if the session is neither revoked nor expired at now
func (s *Session) IsActive(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// NeedsTouch returns true if LastActive is older than interval
func (s *Session) NeedsTouch(now time.Time, interval time.Duration) bool {
	return now.Sub(s.LastActive) >= interval
}

// ClientInfo describes the client that opened a session
type ClientInfo struct {
	IP        string
	Location  *string
	UserAgent string
	Device    string
	Platform  string
	Browser   string
}

// MaxClientFieldLength is the storage limit for the IP, location, platform and browser of a session
const MaxClientFieldLength = 64

// ClipClientField trims a client-supplied value to MaxClientFieldLength characters
func ClipClientField(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= MaxClientFieldLength {
		return s
	}
	return string([]rune(s)[:MaxClientFieldLength])
}
