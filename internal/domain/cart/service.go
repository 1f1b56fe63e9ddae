package cart

import (
	"context"

	"github.com/go-faster/errors"
)

// Service encapsulates cart manipulation logic.
type Service struct {
	carts Repository
}

// NewService creates a cart Service backed by the given repository.
func NewService(carts Repository) *Service {
	return &Service{carts: carts}
}

// Get returns the user's cart, lazily creating an empty one on first access.
func (s *Service) Get(ctx context.Context, userID string) ([]Item, error) {
	items, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get cart")
	}
	return items, nil
}

// AddItem appends the item to the user's cart, or increments the quantity of
// an existing line with the same product id. All fields are required; a zero
// price or quantity is rejected as missing.
func (s *Service) AddItem(ctx context.Context, userID string, it Item) ([]Item, error) {
	if it.ProductID == "" || it.Name == "" || !it.Price.IsPositive() || it.Quantity <= 0 {
		return nil, ErrMissingFields
	}

	items, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get cart")
	}

	merged := false
	for i := range items {
		if items[i].ProductID == it.ProductID {
			items[i].Quantity += it.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, it)
	}

	if err := s.carts.Replace(ctx, userID, items); err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	return items, nil
}

// UpdateQuantity sets the quantity of an existing cart line. A quantity of
// zero or less removes the line entirely.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) ([]Item, error) {
	items, ok, err := s.carts.Find(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "find cart")
	}
	if !ok {
		return nil, ErrCartNotFound
	}

	idx := -1
	for i := range items {
		if items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrItemNotFound
	}

	if quantity <= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = quantity
	}

	if err := s.carts.Replace(ctx, userID, items); err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	return items, nil
}

// RemoveItem filters the product out of the user's cart. Removing an item
// that is already absent is not an error.
func (s *Service) RemoveItem(ctx context.Context, userID, productID string) ([]Item, error) {
	items, ok, err := s.carts.Find(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "find cart")
	}
	if !ok {
		return nil, ErrCartNotFound
	}

	kept := items[:0]
	for _, it := range items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}

	if err := s.carts.Replace(ctx, userID, kept); err != nil {
		return nil, errors.Wrap(err, "save cart")
	}
	return kept, nil
}
