package memstore

import (
	"context"
	"slices"

	"github.com/xenking/shopcart/internal/domain/discount"
)

var _ discount.Repository = (*Store)(nil)

// CodesForUser returns a copy of the user's discount codes.
func (s *Store) CodesForUser(_ context.Context, userID string) ([]discount.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	codes, ok := s.userCodes[userID]
	if !ok {
		return []discount.Code{}, nil
	}
	return slices.Clone(codes), nil
}

// ReplaceForUser stores the given codes as the user's full list.
func (s *Store) ReplaceForUser(_ context.Context, userID string, codes []discount.Code) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userCodes[userID] = slices.Clone(codes)
	return nil
}

// AllUserCodes returns a copy of the complete user-to-codes mapping.
func (s *Store) AllUserCodes(_ context.Context) (map[string][]discount.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make(map[string][]discount.Code, len(s.userCodes))
	for id, codes := range s.userCodes {
		all[id] = slices.Clone(codes)
	}
	return all, nil
}

// AppendAdminCode adds a code to the global admin pool.
func (s *Store) AppendAdminCode(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.adminCodes = append(s.adminCodes, code)
	return nil
}

// AdminCodes returns a copy of the global admin pool.
func (s *Store) AdminCodes(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.adminCodes), nil
}
