package user

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
)

// Service encapsulates account sign-up logic.
type Service struct {
	users Repository
}

// NewService creates a user Service backed by the given repository.
func NewService(users Repository) *Service {
	return &Service{users: users}
}

// SignUp registers a new account. Both username and password are required,
// and the username must not be taken.
func (s *Service) SignUp(ctx context.Context, username, password string) (*User, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(err, "lookup username")
	}

	u := &User{
		ID:       uuid.New().String(),
		Username: username,
		Password: password,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, errors.Wrap(err, "create user")
	}

	return u, nil
}
