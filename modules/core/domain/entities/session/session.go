package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("session not found")

// Session is a server-side login session identified by an opaque token
// stored in the sid cookie.
type Session struct {
	Token     string
	UserID    int64
	IP        string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s *Session) Expired() bool {
	return s.ExpiresAt.Before(time.Now())
}

type Repository interface {
	Create(ctx context.Context, s *Session) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
