package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const sessionIDValue = "sid"

// ErrNoSession возвращается, когда в запросе нет валидной cookie сессии
var ErrNoSession = errors.New("middleware: no session cookie")

// SessionCookie подписанная cookie, в которой хранится только идентификатор сессии.
// Сама сессия живет в БД.
type SessionCookie struct {
	store *sessions.CookieStore
	name  string
}

// NewSessionCookie создает cookie с подписью secret.
// Для secure cookie выставляется SameSite=None, чтобы фронтенд на другом домене мог слать её с credentials.
func NewSessionCookie(secret, name string, secure bool, ttl time.Duration) *SessionCookie {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(int(ttl.Seconds()))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = secure
	store.Options.SameSite = http.SameSiteLaxMode
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	}

	return &SessionCookie{store: store, name: name}
}

// Read возвращает идентификатор сессии из cookie
func (c *SessionCookie) Read(r *http.Request) (string, error) {
	session, err := c.store.New(r, c.name)
	if err != nil || session.IsNew {
		return "", ErrNoSession
	}

	id, ok := session.Values[sessionIDValue].(string)
	if !ok || id == "" {
		return "", ErrNoSession
	}
	return id, nil
}

// Write записывает идентификатор сессии в cookie
func (c *SessionCookie) Write(w http.ResponseWriter, r *http.Request, sessionID string, expiresAt time.Time) error {
	session, _ := c.store.New(r, c.name)
	session.Values[sessionIDValue] = sessionID

	opts := *c.store.Options
	if maxAge := int(time.Until(expiresAt).Seconds()); maxAge > 0 && maxAge < opts.MaxAge {
		opts.MaxAge = maxAge
	}
	session.Options = &opts

	return c.store.Save(r, w, session)
}

// Clear удаляет cookie сессии
func (c *SessionCookie) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := c.store.New(r, c.name)

	opts := *c.store.Options
	opts.MaxAge = -1
	session.Options = &opts

	return c.store.Save(r, w, session)
}
