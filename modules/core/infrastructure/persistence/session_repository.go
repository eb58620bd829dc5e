package persistence

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/modules/core/domain/entities/session"
	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
)

const (
	insertSessionQuery = `
		INSERT INTO sessions (token, user_id, ip, user_agent, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	selectSessionQuery = `
		SELECT token, user_id, ip, user_agent, expires_at, created_at
		FROM sessions
		WHERE token = $1`

	deleteSessionQuery        = `DELETE FROM sessions WHERE token = $1`
	deleteExpiredSessionQuery = `DELETE FROM sessions WHERE expires_at < NOW()`
)

type SessionRepository struct{}

func NewSessionRepository() session.Repository {
	return &SessionRepository{}
}

func (g *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(
		ctx, insertSessionQuery,
		s.Token, s.UserID, s.IP, s.UserAgent, s.ExpiresAt, s.CreatedAt,
	)
	return errors.Wrap(err, "failed to create session")
}

func (g *SessionRepository) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return nil, err
	}
	var s session.Session
	err = db.QueryRowContext(ctx, selectSessionQuery, token).Scan(
		&s.Token, &s.UserID, &s.IP, &s.UserAgent, &s.ExpiresAt, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, session.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get session")
	}
	return &s, nil
}

func (g *SessionRepository) Delete(ctx context.Context, token string) error {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, deleteSessionQuery, token)
	return errors.Wrap(err, "failed to delete session")
}

func (g *SessionRepository) DeleteExpired(ctx context.Context) error {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, deleteExpiredSessionQuery)
	return errors.Wrap(err, "failed to delete expired sessions")
}
