package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserRepo struct {
	users []User
}

func (m *mockUserRepo) Create(_ context.Context, u *User) error {
	for i := range m.users {
		if m.users[i].Username == u.Username {
			return ErrAlreadyExists
		}
	}
	m.users = append(m.users, *u)
	return nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockUserRepo) FindByUsername(_ context.Context, username string) (*User, error) {
	for i := range m.users {
		if m.users[i].Username == username {
			u := m.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func TestSignUp(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewService(repo)

	u, err := svc.SignUp(context.Background(), "alice", "secret")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.Empty(t, u.Role)
}

func TestSignUp_MissingCredentials(t *testing.T) {
	svc := NewService(&mockUserRepo{})

	_, err := svc.SignUp(context.Background(), "", "secret")
	require.ErrorIs(t, err, ErrMissingCredentials)

	_, err = svc.SignUp(context.Background(), "alice", "")
	require.ErrorIs(t, err, ErrMissingCredentials)
}

func TestSignUp_DuplicateUsername(t *testing.T) {
	svc := NewService(&mockUserRepo{})

	_, err := svc.SignUp(context.Background(), "alice", "secret")
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), "alice", "other")
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestSignUp_UniqueIDs(t *testing.T) {
	svc := NewService(&mockUserRepo{})

	a, err := svc.SignUp(context.Background(), "alice", "secret")
	require.NoError(t, err)
	b, err := svc.SignUp(context.Background(), "bob", "secret")
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}
