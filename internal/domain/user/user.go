package user

import (
	"context"

	"github.com/go-faster/errors"
)

// Sentinel errors for account operations.
var (
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrAlreadyExists is returned when the username is already taken.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrNotFound is returned when no account matches the lookup.
	ErrNotFound = errors.New("user not found")
)

// RoleAdmin marks the seeded administrator account.
const RoleAdmin = "admin"

// User represents a registered account. Accounts are immutable after
// creation.
type User struct {
	ID       string
	Username string
	Password string
	Role     string
}

// Repository defines persistence operations for accounts.
type Repository interface {
	// Create stores a new account. It returns ErrAlreadyExists when the
	// username is taken.
	Create(ctx context.Context, u *User) error
	// FindByID returns the account with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*User, error)
	// FindByUsername returns the account with the given username, or
	// ErrNotFound.
	FindByUsername(ctx context.Context, username string) (*User, error)
}
