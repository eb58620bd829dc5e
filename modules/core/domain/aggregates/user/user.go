package user

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound      = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already registered")
)

// User is the account aggregate. The password never leaves the aggregate
// unhashed.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// New builds a user with a freshly hashed password.
func New(username, email, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}, nil
}

// CheckPassword reports whether the cleartext password matches the
// stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Repository is the persistence port for accounts. Lookups on username
// and email are case-insensitive.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsernameOrEmail(ctx context.Context, identifier string) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u *User) (*User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}
