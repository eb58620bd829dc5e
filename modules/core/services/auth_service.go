package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/modules/core/domain/aggregates/user"
	"github.com/mnicoli13/programmazione-web-2/modules/core/domain/entities/session"
	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
	"github.com/mnicoli13/programmazione-web-2/pkg/configuration"
	"github.com/mnicoli13/programmazione-web-2/pkg/eventbus"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// SignedInEvent is published after a successful login.
type SignedInEvent struct {
	User    *user.User
	Session *session.Session
}

// RegisteredEvent is published after a successful registration.
type RegisteredEvent struct {
	User *user.User
}

// SignedOutEvent is published when a session is terminated by the user.
type SignedOutEvent struct {
	Token string
}

type AuthService struct {
	users     user.Repository
	sessions  session.Repository
	publisher eventbus.EventBus
}

func NewAuthService(
	users user.Repository,
	sessions session.Repository,
	publisher eventbus.EventBus,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		publisher: publisher,
	}
}

// Login authenticates by username or email and opens a session. With
// remember set the session lasts the configured remember duration,
// otherwise the regular session duration; the cookie lifetime is decided
// by the caller.
func (s *AuthService) Login(ctx context.Context, identifier, password string, remember bool) (*user.User, *session.Session, error) {
	u, err := s.users.GetByUsernameOrEmail(ctx, identifier)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !u.CheckPassword(password) {
		return nil, nil, ErrInvalidCredentials
	}
	if err := s.users.UpdateLastLogin(ctx, u.ID); err != nil {
		return nil, nil, err
	}

	conf := configuration.Use()
	duration := conf.SessionDuration
	if remember {
		duration = conf.RememberDuration
	}
	ip, _ := composables.UseIP(ctx)
	userAgent, _ := composables.UseUserAgent(ctx)
	sess := &session.Session{
		Token:     uuid.New().String(),
		UserID:    u.ID,
		IP:        ip,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(duration),
		CreatedAt: time.Now(),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, nil, err
	}
	s.publisher.Publish(SignedInEvent{User: u, Session: sess})
	return u, sess, nil
}

// Register creates an account. Availability is checked username first,
// then email; the database constraints back the same invariants against
// concurrent registrations.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*user.User, error) {
	taken, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, user.ErrUsernameTaken
	}
	taken, err = s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, user.ErrEmailTaken
	}
	u, err := user.New(username, email, password)
	if err != nil {
		return nil, err
	}
	created, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(RegisteredEvent{User: created})
	return created, nil
}

// CheckUsername reports whether a username is still available. The
// lookup is case-insensitive.
func (s *AuthService) CheckUsername(ctx context.Context, username string) (bool, error) {
	exists, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// CheckEmail reports whether an email is still available.
func (s *AuthService) CheckEmail(ctx context.Context, email string) (bool, error) {
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// Logout drops the session behind the token. Unknown tokens are not an
// error: the outcome is the same.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil && !errors.Is(err, session.ErrNotFound) {
		return err
	}
	s.publisher.Publish(SignedOutEvent{Token: token})
	return nil
}

// Authorize resolves a session token into a context carrying the user
// and session. Expired sessions are removed on sight.
func (s *AuthService) Authorize(ctx context.Context, token string) (context.Context, error) {
	sess, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return ctx, err
	}
	if sess.Expired() {
		_ = s.sessions.Delete(ctx, token)
		return ctx, session.ErrNotFound
	}
	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return ctx, err
	}
	ctx = composables.WithUser(ctx, u)
	ctx = composables.WithSession(ctx, sess)
	return ctx, nil
}
