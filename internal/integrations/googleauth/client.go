package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client проверяет Google credential через tokeninfo endpoint
type Client struct {
	tokenInfoURL string
	clientID     string
	httpClient   *http.Client
	log          Logger
}

// NewClient создает клиента; пустой clientID отключает проверку audience
func NewClient(tokenInfoURL, clientID string, timeout time.Duration, log Logger) *Client {
	return &Client{
		tokenInfoURL: tokenInfoURL,
		clientID:     clientID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Verify проверяет ID token (JWT) или access token и возвращает данные аккаунта
func (c *Client) Verify(ctx context.Context, credential string) (*Identity, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, fmt.Errorf("%w: empty credential", ErrInvalidToken)
	}

	params := url.Values{}
	if isJWT(credential) {
		params.Set("id_token", credential)
	} else {
		params.Set("access_token", credential)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.tokenInfoURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest, http.StatusUnauthorized:
		c.log.Warn("Google rejected credential: status=%d", resp.StatusCode)
		return nil, ErrInvalidToken
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if info.Sub == "" || info.Email == "" {
		return nil, fmt.Errorf("%w: token has no subject or email", ErrInvalidToken)
	}

	if c.clientID != "" && info.Aud != c.clientID && info.Azp != c.clientID {
		c.log.Warn("Google credential audience mismatch: aud=%s, azp=%s", info.Aud, info.Azp)
		return nil, ErrAudienceMismatch
	}

	if info.EmailVerified != "true" {
		return nil, ErrEmailNotVerified
	}

	c.log.Info("Google credential verified for sub=%s", info.Sub)
	return &Identity{
		Subject: info.Sub,
		Email:   strings.ToLower(info.Email),
		Name:    info.Name,
		Picture: info.Picture,
	}, nil
}

// isJWT ID token Google - это JWT из трех частей
func isJWT(token string) bool {
	return strings.Count(token, ".") == 2
}
