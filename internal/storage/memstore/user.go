package memstore

import (
	"context"

	"github.com/xenking/shopcart/internal/domain/user"
)

var _ user.Repository = (*Store)(nil)

// Create stores a new account, enforcing username uniqueness.
func (s *Store) Create(_ context.Context, u *user.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Username == u.Username {
			return user.ErrAlreadyExists
		}
	}
	s.users = append(s.users, *u)
	return nil
}

// FindByID returns the account with the given id.
func (s *Store) FindByID(_ context.Context, id string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}

// FindByUsername returns the account with the given username.
func (s *Store) FindByUsername(_ context.Context, username string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].Username == username {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}
