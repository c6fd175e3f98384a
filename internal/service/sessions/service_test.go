package sessions

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/session"
	userRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/user"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

var now = time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

type fakeSessions struct {
	byID      map[string]*domain.Session
	touched   []string
	purgedAt  time.Time
	failTouch bool
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{byID: map[string]*domain.Session{}}
}

func (f *fakeSessions) Create(_ context.Context, s *domain.Session) (*domain.Session, error) {
	s.ID = int64(len(f.byID) + 1)
	f.byID[s.SessionID] = s
	return s, nil
}

func (f *fakeSessions) GetBySessionID(_ context.Context, id string) (*domain.Session, error) {
	s, ok := f.byID[id]
	if !ok {
		return nil, sessionRepo.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessions) ListActiveByUser(_ context.Context, userID int64, at time.Time) ([]*domain.Session, error) {
	var list []*domain.Session
	for _, s := range f.byID {
		if s.UserID == userID && s.IsActive(at) {
			list = append(list, s)
		}
	}
	return list, nil
}

func (f *fakeSessions) Touch(_ context.Context, id string, at time.Time) error {
	if f.failTouch {
		return errors.New("touch failed")
	}
	f.touched = append(f.touched, id)
	f.byID[id].LastActive = at
	return nil
}

func (f *fakeSessions) Revoke(_ context.Context, userID int64, id string, at time.Time) error {
	s, ok := f.byID[id]
	if !ok || s.UserID != userID || s.RevokedAt != nil {
		return sessionRepo.ErrSessionNotFound
	}
	s.RevokedAt = &at
	return nil
}

func (f *fakeSessions) RevokeAll(_ context.Context, userID int64, at time.Time) (int64, error) {
	var n int64
	for _, s := range f.byID {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &at
			n++
		}
	}
	return n, nil
}

func (f *fakeSessions) PurgeStale(_ context.Context, before time.Time) (int64, error) {
	f.purgedAt = before
	return 2, nil
}

type fakeUsers map[int64]*domain.User

func (f fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type recorder struct {
	actions []domain.ActivityAction
}

func (r *recorder) Record(_ context.Context, a *domain.Activity) {
	r.actions = append(r.actions, a.Action)
}

func newTestService(repo *fakeSessions, users fakeUsers, rec *recorder) *Service {
	s := NewService(repo, users, rec, 24*time.Hour, 5*time.Minute, logger.NewNop())
	s.now = func() time.Time { return now }
	ids := []string{"sid-1", "sid-2", "sid-3"}
	s.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}
	return s
}

func TestService_OpenAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSessions()
	users := fakeUsers{7: {ID: 7, Username: "jean", Role: domain.RoleUser}}
	s := newTestService(repo, users, &recorder{})

	client := DescribeClient("10.0.0.1", nil, "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	session, err := s.Open(ctx, 7, client)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", session.SessionID)
	assert.Equal(t, now.Add(24*time.Hour), session.ExpiresAt)
	assert.Equal(t, domain.DeviceDesktop, session.Device)

	user, got, err := s.Authenticate(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, session.ID, got.ID)
	assert.Empty(t, repo.touched, "fresh session is not touched")

	s.now = func() time.Time { return now.Add(10 * time.Minute) }
	_, _, err = s.Authenticate(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"sid-1"}, repo.touched)
}

func TestService_Authenticate_Errors(t *testing.T) {
	ctx := context.Background()
	revokedAt := now.Add(-time.Minute)

	repo := newFakeSessions()
	repo.byID["expired"] = &domain.Session{SessionID: "expired", UserID: 7, ExpiresAt: now.Add(-time.Second)}
	repo.byID["revoked"] = &domain.Session{SessionID: "revoked", UserID: 7, ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt}
	repo.byID["orphan"] = &domain.Session{SessionID: "orphan", UserID: 99, ExpiresAt: now.Add(time.Hour), LastActive: now}
	s := newTestService(repo, fakeUsers{7: {ID: 7}}, &recorder{})

	tests := []struct {
		name    string
		id      string
		wantErr error
	}{
		{name: "empty", id: "", wantErr: ErrSessionNotFound},
		{name: "unknown", id: "missing", wantErr: ErrSessionNotFound},
		{name: "expired", id: "expired", wantErr: ErrSessionInactive},
		{name: "revoked", id: "revoked", wantErr: ErrSessionInactive},
		{name: "deleted user", id: "orphan", wantErr: ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := s.Authenticate(ctx, tt.id)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_Authenticate_TouchFailureIsIgnored(t *testing.T) {
	repo := newFakeSessions()
	repo.failTouch = true
	repo.byID["old"] = &domain.Session{SessionID: "old", UserID: 7, ExpiresAt: now.Add(time.Hour), LastActive: now.Add(-time.Hour)}
	s := newTestService(repo, fakeUsers{7: {ID: 7}}, &recorder{})

	_, _, err := s.Authenticate(context.Background(), "old")
	assert.NoError(t, err)
}

func TestService_ListAndRevoke(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSessions()
	rec := &recorder{}
	s := newTestService(repo, fakeUsers{7: {ID: 7}, 8: {ID: 8}}, rec)

	_, err := s.Open(ctx, 7, domain.ClientInfo{})
	require.NoError(t, err)
	_, err = s.Open(ctx, 7, domain.ClientInfo{})
	require.NoError(t, err)
	_, err = s.Open(ctx, 8, domain.ClientInfo{})
	require.NoError(t, err)

	list, err := s.List(ctx, 7, "sid-2")
	require.NoError(t, err)
	require.Len(t, list, 2)
	currents := 0
	for _, item := range list {
		if item.Current {
			currents++
			assert.Equal(t, "sid-2", item.SessionID)
		}
	}
	assert.Equal(t, 1, currents)

	_, err = s.Revoke(ctx, 7, "sid-3", "sid-2")
	assert.ErrorIs(t, err, ErrSessionNotFound, "cannot revoke another user's session")

	current, err := s.Revoke(ctx, 7, "sid-1", "sid-2")
	require.NoError(t, err)
	assert.False(t, current)

	current, err = s.Revoke(ctx, 7, "sid-2", "sid-2")
	require.NoError(t, err)
	assert.True(t, current)

	assert.Equal(t, []domain.ActivityAction{domain.ActionSessionRevoke, domain.ActionSessionRevoke}, rec.actions)
}

func TestService_RevokeAllAndPurge(t *testing.T) {
	ctx := context.Background()
	repo := newFakeSessions()
	s := newTestService(repo, fakeUsers{7: {ID: 7}}, &recorder{})

	_, _ = s.Open(ctx, 7, domain.ClientInfo{})
	_, _ = s.Open(ctx, 7, domain.ClientInfo{})

	revoked, err := s.RevokeAll(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), revoked)

	list, err := s.List(ctx, 7, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	purged, err := s.Purge(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)
	assert.Equal(t, now.Add(-domain.SessionRetention), repo.purgedAt)
}

func TestDescribeClient(t *testing.T) {
	location := "RW"

	tests := []struct {
		name       string
		ua         string
		wantDevice string
	}{
		{name: "empty", ua: "", wantDevice: domain.DeviceDesktop},
		{name: "iphone", ua: "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1", wantDevice: domain.DeviceMobile},
		{name: "ipad", ua: "Mozilla/5.0 (iPad; CPU OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.6 Mobile/15E148 Safari/604.1", wantDevice: domain.DeviceTablet},
		{name: "android tablet", ua: "Mozilla/5.0 (Linux; Android 13; SM-X700) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36", wantDevice: domain.DeviceTablet},
		{name: "bot", ua: "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", wantDevice: domain.DeviceBot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := DescribeClient("1.2.3.4", &location, tt.ua)
			assert.Equal(t, tt.wantDevice, info.Device)
			assert.Equal(t, "1.2.3.4", info.IP)
			assert.Equal(t, &location, info.Location)
			assert.NotEmpty(t, info.Browser)
		})
	}
}

func TestDescribeClient_ClipsLongValues(t *testing.T) {
	location := strings.Repeat("R", 100)
	ua := "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/" + strings.Repeat("1", 200) + " Safari/537.36"

	info := DescribeClient(strings.Repeat("9", 100), &location, ua)

	assert.Len(t, info.IP, domain.MaxClientFieldLength)
	require.NotNil(t, info.Location)
	assert.Len(t, *info.Location, domain.MaxClientFieldLength)
	assert.LessOrEqual(t, len([]rune(info.Browser)), domain.MaxClientFieldLength)
	assert.LessOrEqual(t, len([]rune(info.Platform)), domain.MaxClientFieldLength)
	assert.Equal(t, ua, info.UserAgent)
}
