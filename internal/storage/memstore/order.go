package memstore

import (
	"context"
	"slices"

	"github.com/xenking/shopcart/internal/domain/order"
)

var _ order.Repository = (*Store)(nil)

// Append adds a completed order to the ledger.
func (s *Store) Append(_ context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders = append(s.orders, *o)
	return nil
}

// List returns a copy of the full ledger, oldest first.
func (s *Store) List(_ context.Context) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.orders), nil
}

// ListByUser returns the user's orders, oldest first.
func (s *Store) ListByUser(_ context.Context, userID string) ([]order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []order.Order
	for i := range s.orders {
		if s.orders[i].UserID == userID {
			out = append(out, s.orders[i])
		}
	}
	return out, nil
}

// CountByUser returns the user's completed order count.
func (s *Store) CountByUser(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counts[userID], nil
}

// IncrementCount adds 1 to the user's order count and returns the new value.
func (s *Store) IncrementCount(_ context.Context, userID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts[userID]++
	return s.counts[userID], nil
}
