package persistence

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/mnicoli13/programmazione-web-2/modules/core/domain/aggregates/user"
	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
)

const (
	selectUserQuery = `
		SELECT id, username, email, password_hash, created_at, last_login
		FROM users`
	selectUserByIDQuery         = selectUserQuery + ` WHERE id = $1`
	selectUserByIdentifierQuery = selectUserQuery + ` WHERE LOWER(username) = LOWER($1) OR LOWER(email) = LOWER($1)`

	userUsernameExistsQuery = `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(username) = LOWER($1))`
	userEmailExistsQuery    = `SELECT EXISTS (SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`

	insertUserQuery = `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	updateUserLastLoginQuery = `UPDATE users SET last_login = NOW() WHERE id = $1`
)

type userRow struct {
	ID           int64        `db:"id"`
	Username     string       `db:"username"`
	Email        string       `db:"email"`
	PasswordHash string       `db:"password_hash"`
	CreatedAt    time.Time    `db:"created_at"`
	LastLogin    sql.NullTime `db:"last_login"`
}

func (r userRow) toDomain() *user.User {
	u := &user.User{
		ID:           r.ID,
		Username:     r.Username,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt,
	}
	if r.LastLogin.Valid {
		lastLogin := r.LastLogin.Time
		u.LastLogin = &lastLogin
	}
	return u
}

type UserRepository struct{}

func NewUserRepository() user.Repository {
	return &UserRepository{}
}

func (g *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return nil, err
	}
	var row userRow
	if err := db.GetContext(ctx, &row, selectUserByIDQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get user")
	}
	return row.toDomain(), nil
}

func (g *UserRepository) GetByUsernameOrEmail(ctx context.Context, identifier string) (*user.User, error) {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return nil, err
	}
	var row userRow
	if err := db.GetContext(ctx, &row, selectUserByIdentifierQuery, identifier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to get user")
	}
	return row.toDomain(), nil
}

func (g *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := db.GetContext(ctx, &exists, userUsernameExistsQuery, username); err != nil {
		return false, errors.Wrap(err, "failed to check username")
	}
	return exists, nil
}

func (g *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return false, err
	}
	var exists bool
	if err := db.GetContext(ctx, &exists, userEmailExistsQuery, email); err != nil {
		return false, errors.Wrap(err, "failed to check email")
	}
	return exists, nil
}

func (g *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return nil, err
	}
	created := *u
	err = db.QueryRowContext(
		ctx, insertUserQuery,
		u.Username, u.Email, u.PasswordHash, u.CreatedAt,
	).Scan(&created.ID)
	if err != nil {
		return nil, mapUserConstraintError(err)
	}
	return &created, nil
}

func (g *UserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	db, err := composables.UseDB(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, updateUserLastLoginQuery, id); err != nil {
		return errors.Wrap(err, "failed to update last login")
	}
	return nil
}

// mapUserConstraintError turns Postgres unique violations into the
// domain sentinels the service layer reports to clients.
func mapUserConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		if strings.Contains(pqErr.Constraint, "email") {
			return user.ErrEmailTaken
		}
		return user.ErrUsernameTaken
	}
	return errors.Wrap(err, "failed to create user")
}
