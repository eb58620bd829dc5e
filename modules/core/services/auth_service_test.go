package services_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnicoli13/programmazione-web-2/modules/core/domain/aggregates/user"
	"github.com/mnicoli13/programmazione-web-2/modules/core/domain/entities/session"
	"github.com/mnicoli13/programmazione-web-2/modules/core/services"
	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
	"github.com/mnicoli13/programmazione-web-2/pkg/eventbus"
)

type fakeUserRepo struct {
	users          []*user.User
	lastLogins     map[int64]time.Time
	usernameChecks int
	emailChecks    int
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (f *fakeUserRepo) GetByUsernameOrEmail(_ context.Context, identifier string) (*user.User, error) {
	for _, u := range f.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (f *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	f.usernameChecks++
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	f.emailChecks++
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) (*user.User, error) {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return nil, user.ErrUsernameTaken
		}
		if existing.Email == u.Email {
			return nil, user.ErrEmailTaken
		}
	}
	created := *u
	created.ID = int64(len(f.users) + 1)
	f.users = append(f.users, &created)
	return &created, nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, id int64) error {
	if f.lastLogins == nil {
		f.lastLogins = map[int64]time.Time{}
	}
	f.lastLogins[id] = time.Now()
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*session.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*session.Session{}}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *session.Session) error {
	f.sessions[s.Token] = s
	return nil
}

func (f *fakeSessionRepo) GetByToken(_ context.Context, token string) (*session.Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, session.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, token string) error {
	if _, ok := f.sessions[token]; !ok {
		return session.ErrNotFound
	}
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context) error {
	for token, s := range f.sessions {
		if s.Expired() {
			delete(f.sessions, token)
		}
	}
	return nil
}

func setup(t *testing.T) (*services.AuthService, *fakeUserRepo, *fakeSessionRepo) {
	t.Helper()
	t.Setenv("LOG_PATH", filepath.Join(t.TempDir(), "app.log"))
	users := &fakeUserRepo{}
	sessions := newFakeSessionRepo()
	bus := eventbus.NewEventPublisher(logrus.New())
	return services.NewAuthService(users, sessions, bus), users, sessions
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _, sessions := setup(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "mario", "mario@example.com", "Abcdef1!")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	u, sess, err := svc.Login(ctx, "mario", "Abcdef1!", false)
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	assert.NotEmpty(t, sess.Token)
	assert.Contains(t, sessions.sessions, sess.Token)

	// Email works as the identifier too.
	_, _, err = svc.Login(ctx, "mario@example.com", "Abcdef1!", false)
	assert.NoError(t, err)
}

func TestAuthService_LoginInvalidCredentials(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "ghost", "whatever1", false)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Register(ctx, "mario", "mario@example.com", "Abcdef1!")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "mario", "wrong-password", false)
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}

func TestAuthService_RememberExtendsSession(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "mario", "mario@example.com", "Abcdef1!")
	require.NoError(t, err)

	_, short, err := svc.Login(ctx, "mario", "Abcdef1!", false)
	require.NoError(t, err)
	_, long, err := svc.Login(ctx, "mario", "Abcdef1!", true)
	require.NoError(t, err)

	assert.False(t, long.ExpiresAt.Before(short.ExpiresAt))
}

func TestAuthService_RegisterConflicts(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "mario", "mario@example.com", "Abcdef1!")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "mario", "other@example.com", "Abcdef1!")
	assert.ErrorIs(t, err, user.ErrUsernameTaken)

	_, err = svc.Register(ctx, "luigi", "mario@example.com", "Abcdef1!")
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestAuthService_RegisterChecksUsernameFirst(t *testing.T) {
	svc, users, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "mario", "mario@example.com", "Abcdef1!")
	require.NoError(t, err)

	users.usernameChecks = 0
	users.emailChecks = 0
	_, err = svc.Register(ctx, "mario", "other@example.com", "Abcdef1!")
	assert.ErrorIs(t, err, user.ErrUsernameTaken)
	assert.Equal(t, 1, users.usernameChecks)
	// A taken username aborts the flow before the email is ever checked.
	assert.Equal(t, 0, users.emailChecks)
}

func TestAuthService_CheckAvailability(t *testing.T) {
	svc, _, _ := setup(t)
	ctx := context.Background()

	available, err := svc.CheckUsername(ctx, "mario")
	require.NoError(t, err)
	assert.True(t, available)

	_, err = svc.Register(ctx, "mario", "mario@example.com", "Abcdef1!")
	require.NoError(t, err)

	available, err = svc.CheckUsername(ctx, "mario")
	require.NoError(t, err)
	assert.False(t, available)

	available, err = svc.CheckEmail(ctx, "mario@example.com")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestAuthService_LogoutUnknownToken(t *testing.T) {
	svc, _, _ := setup(t)
	assert.NoError(t, svc.Logout(context.Background(), "never-issued"))
}

func TestAuthService_Authorize(t *testing.T) {
	svc, _, sessions := setup(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "mario", "mario@example.com", "Abcdef1!")
	require.NoError(t, err)
	_, sess, err := svc.Login(ctx, "mario", "Abcdef1!", false)
	require.NoError(t, err)

	authCtx, err := svc.Authorize(ctx, sess.Token)
	require.NoError(t, err)
	u, err := composables.UseUser(authCtx)
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)

	// Expired sessions are rejected and removed.
	sessions.sessions[sess.Token].ExpiresAt = time.Now().Add(-time.Minute)
	_, err = svc.Authorize(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.NotContains(t, sessions.sessions, sess.Token)

	_, err = svc.Authorize(ctx, "bogus")
	assert.ErrorIs(t, err, session.ErrNotFound)
}
