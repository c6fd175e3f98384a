package auth

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/internal/domain"
	userRepo "github.com/m04kA/SMC-CarWashService/internal/infra/storage/user"
	"github.com/m04kA/SMC-CarWashService/internal/integrations/googleauth"
	"github.com/m04kA/SMC-CarWashService/internal/service/auth/models"
	"github.com/m04kA/SMC-CarWashService/pkg/filestore"
	"github.com/m04kA/SMC-CarWashService/pkg/logger"
	"github.com/m04kA/SMC-CarWashService/pkg/password"
	"github.com/m04kA/SMC-CarWashService/pkg/validation"
)

type fakeUsers struct {
	users  []*domain.User
	nextID int64
}

func (f *fakeUsers) find(match func(u *domain.User) bool) (*domain.User, error) {
	for _, u := range f.users {
		if match(u) {
			return u, nil
		}
	}
	return nil, userRepo.ErrUserNotFound
}

func (f *fakeUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, err := f.GetByUsername(context.Background(), user.Username); err == nil {
		return nil, userRepo.ErrUsernameTaken
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.users = append(f.users, user)
	return user, nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.ID == id })
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return strings.EqualFold(u.Username, username) })
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.Email != nil && strings.EqualFold(*u.Email, email) })
}

func (f *fakeUsers) GetByGoogleID(_ context.Context, googleID string) (*domain.User, error) {
	return f.find(func(u *domain.User) bool { return u.GoogleID != nil && *u.GoogleID == googleID })
}

func (f *fakeUsers) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, err := f.GetByUsername(ctx, username)
	return err == nil, nil
}

func (f *fakeUsers) UpdateProfile(ctx context.Context, id int64, update domain.ProfileUpdate) (*domain.User, error) {
	user, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Username != nil {
		if other, err := f.GetByUsername(ctx, *update.Username); err == nil && other.ID != id {
			return nil, userRepo.ErrUsernameTaken
		}
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = update.Email
	}
	if update.FullName != nil {
		user.FullName = update.FullName
	}
	if update.ProfileImage != nil {
		user.ProfileImage = update.ProfileImage
	}
	return user, nil
}

func (f *fakeUsers) LinkGoogle(ctx context.Context, id int64, googleID string) (*domain.User, error) {
	user, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.GoogleID = &googleID
	return user, nil
}

type fakeGoogle struct {
	identity *googleauth.Identity
	err      error
}

func (f *fakeGoogle) Verify(_ context.Context, _ string) (*googleauth.Identity, error) {
	return f.identity, f.err
}

type fakeSessions struct {
	opened []int64
	closed []string
}

func (f *fakeSessions) Open(_ context.Context, userID int64, _ domain.ClientInfo) (*domain.Session, error) {
	f.opened = append(f.opened, userID)
	return &domain.Session{SessionID: "sid", UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeSessions) Close(_ context.Context, _ int64, sessionID string) error {
	f.closed = append(f.closed, sessionID)
	return nil
}

type recorder struct {
	actions []domain.ActivityAction
}

func (r *recorder) Record(_ context.Context, a *domain.Activity) {
	r.actions = append(r.actions, a.Action)
}

type fakeMetrics struct {
	attempts []string
}

func (m *fakeMetrics) ObserveAuthAttempt(method, result string) {
	m.attempts = append(m.attempts, method+":"+result)
}

type fixture struct {
	svc      *Service
	users    *fakeUsers
	google   *fakeGoogle
	sessions *fakeSessions
	rec      *recorder
	metrics  *fakeMetrics
	fs       afero.Fs
}

func newFixture() *fixture {
	f := &fixture{
		users:    &fakeUsers{},
		google:   &fakeGoogle{},
		sessions: &fakeSessions{},
		rec:      &recorder{},
		metrics:  &fakeMetrics{},
		fs:       afero.NewMemMapFs(),
	}
	store := filestore.New(f.fs, "/uploads", 1<<20)
	f.svc = NewService(f.users, password.NewHasher(4), f.google, f.sessions, store, f.rec, f.metrics, logger.NewNop())
	return f
}

func pngImage(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return &buf
}

func TestService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	result, err := f.svc.Register(ctx, &models.RegisterRequest{Username: " jean ", Password: "secret1"}, domain.ClientInfo{IP: "1.1.1.1"})
	require.NoError(t, err)
	assert.Equal(t, "jean", result.User.Username)
	assert.Equal(t, "user", result.User.Role)
	assert.Equal(t, "sid", result.SessionID)

	_, err = f.svc.Register(ctx, &models.RegisterRequest{Username: "JEAN", Password: "secret1"}, domain.ClientInfo{})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = f.svc.Register(ctx, &models.RegisterRequest{Username: "ab", Password: "secret1"}, domain.ClientInfo{})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "username must be at least 3 characters", validation.Message(err, ""))

	login, err := f.svc.Login(ctx, &models.LoginRequest{Username: "jean", Password: "secret1"}, domain.ClientInfo{})
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)

	_, err = f.svc.Login(ctx, &models.LoginRequest{Username: "jean", Password: "wrong!!"}, domain.ClientInfo{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.svc.Login(ctx, &models.LoginRequest{Username: "nobody", Password: "secret1"}, domain.ClientInfo{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Equal(t, []domain.ActivityAction{domain.ActionRegister, domain.ActionLogin}, f.rec.actions)
	assert.Equal(t, []string{"password:success", "password:failure", "password:failure"}, f.metrics.attempts)
}

func TestService_Login_GoogleOnlyAccount(t *testing.T) {
	f := newFixture()
	email := "amina@example.com"
	f.users.users = append(f.users.users, &domain.User{ID: 1, Username: "amina", Email: &email, Provider: domain.ProviderGoogle})
	f.users.nextID = 1

	_, err := f.svc.Login(context.Background(), &models.LoginRequest{Username: "amina", Password: "whatever"}, domain.ClientInfo{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_LoginGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with unique username", func(t *testing.T) {
		f := newFixture()
		_, _ = f.users.Create(ctx, &domain.User{Username: "amina"})
		f.google.identity = &googleauth.Identity{Subject: "g-1", Email: "amina@example.com", Name: "Amina K", Picture: "https://lh3/p.png"}

		result, err := f.svc.LoginGoogle(ctx, &models.GoogleLoginRequest{Credential: "a.b.c"}, domain.ClientInfo{})
		require.NoError(t, err)
		assert.Equal(t, "amina1", result.User.Username)
		assert.Equal(t, "google", result.User.Provider)
		require.NotNil(t, result.User.FullName)
		assert.Equal(t, "Amina K", *result.User.FullName)
	})

	t.Run("links existing account by email", func(t *testing.T) {
		f := newFixture()
		email := "jean@example.com"
		existing, _ := f.users.Create(ctx, &domain.User{Username: "jean", Email: &email, Provider: domain.ProviderLocal})
		f.google.identity = &googleauth.Identity{Subject: "g-2", Email: email}

		result, err := f.svc.LoginGoogle(ctx, &models.GoogleLoginRequest{Credential: "token"}, domain.ClientInfo{})
		require.NoError(t, err)
		assert.Equal(t, existing.ID, result.User.ID)
		require.NotNil(t, existing.GoogleID)
		assert.Equal(t, "g-2", *existing.GoogleID)
	})

	t.Run("rejected credential", func(t *testing.T) {
		f := newFixture()
		f.google.err = googleauth.ErrAudienceMismatch

		_, err := f.svc.LoginGoogle(ctx, &models.GoogleLoginRequest{Credential: "token"}, domain.ClientInfo{})
		assert.ErrorIs(t, err, ErrGoogleAuthFailed)
		assert.Equal(t, []string{"google:failure"}, f.metrics.attempts)
	})
}

func TestService_EditProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user, _ := f.users.Create(ctx, &domain.User{Username: "jean"})
	_, _ = f.users.Create(ctx, &domain.User{Username: "taken"})

	resp, err := f.svc.EditProfile(ctx, user.ID, &models.EditProfileRequest{
		Email:    " Jean@Example.com ",
		FullName: "Jean Claude",
		Image:    pngImage(t),
	})
	require.NoError(t, err)
	assert.Equal(t, "Profile updated successfully", resp.Message)
	assert.Equal(t, "jean", resp.User.Username, "empty username is left unchanged")
	require.NotNil(t, resp.User.Email)
	assert.Equal(t, "jean@example.com", *resp.User.Email)
	require.NotNil(t, resp.User.ProfileImage)
	assert.True(t, strings.HasPrefix(*resp.User.ProfileImage, "/uploads/profiles/"))

	first := *resp.User.ProfileImage
	resp, err = f.svc.EditProfile(ctx, user.ID, &models.EditProfileRequest{Image: pngImage(t)})
	require.NoError(t, err)
	exists, err := afero.Exists(f.fs, strings.TrimPrefix(first, "/uploads"))
	require.NoError(t, err)
	assert.False(t, exists, "previous image is deleted")

	_, err = f.svc.EditProfile(ctx, user.ID, &models.EditProfileRequest{Username: "taken"})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = f.svc.EditProfile(ctx, user.ID, &models.EditProfileRequest{Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.EditProfile(ctx, user.ID, &models.EditProfileRequest{Image: strings.NewReader("plain text")})
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestService_LogoutAndMe(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	user, _ := f.users.Create(ctx, &domain.User{Username: "jean"})

	require.NoError(t, f.svc.Logout(ctx, user.ID, "sid"))
	assert.Equal(t, []string{"sid"}, f.sessions.closed)

	me, err := f.svc.Me(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "jean", me.Username)

	_, err = f.svc.Me(ctx, 404)
	assert.True(t, errors.Is(err, ErrUserNotFound))
}

func TestUsernameBase(t *testing.T) {
	assert.Equal(t, "jean.claude", usernameBase("Jean.Claude@example.com"))
	assert.Equal(t, "userab", usernameBase("a+b@example.com"))
	assert.Len(t, usernameBase(strings.Repeat("x", 80)+"@example.com"), domain.MaxUsernameLength-4)
}
