package memstore

import (
	"context"
	"slices"

	"github.com/xenking/shopcart/internal/domain/cart"
)

var _ cart.Repository = (*Store)(nil)

// GetOrCreate returns a copy of the user's cart, creating an empty entry
// when the user has none yet.
func (s *Store) GetOrCreate(_ context.Context, userID string) ([]cart.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.carts[userID]
	if !ok {
		s.carts[userID] = []cart.Item{}
		return []cart.Item{}, nil
	}
	return slices.Clone(items), nil
}

// Find returns a copy of the user's cart without creating it.
func (s *Store) Find(_ context.Context, userID string) ([]cart.Item, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.carts[userID]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(items), true, nil
}

// Replace stores the given items as the user's cart.
func (s *Store) Replace(_ context.Context, userID string, items []cart.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[userID] = slices.Clone(items)
	return nil
}

// Delete removes the user's cart entry entirely.
func (s *Store) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, userID)
	return nil
}
