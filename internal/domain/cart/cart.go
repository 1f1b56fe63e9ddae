package cart

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors for cart operations.
var (
	// ErrMissingFields is returned when a required item field is absent or
	// zero. Zero prices and quantities are rejected the same way missing
	// fields are.
	ErrMissingFields = errors.New("missing required fields")
	// ErrCartNotFound is returned when the user has no cart yet.
	ErrCartNotFound = errors.New("cart not found")
	// ErrItemNotFound is returned when the cart has no item with the
	// requested product id.
	ErrItemNotFound = errors.New("item not found in cart")
)

// Item is a single cart line. Quantity is always positive; an item whose
// quantity would drop to zero is removed from the cart instead.
type Item struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

// Subtotal returns the sum of price*quantity over the given items.
func Subtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return sum
}

// Repository defines persistence operations for per-user carts. Items within
// one cart are unique by product id and keep insertion order.
type Repository interface {
	// GetOrCreate returns the user's cart, creating an empty one when the
	// user has none yet.
	GetOrCreate(ctx context.Context, userID string) ([]Item, error)
	// Find returns the user's cart without creating it. The second return
	// value reports whether a cart exists.
	Find(ctx context.Context, userID string) ([]Item, bool, error)
	// Replace stores the given items as the user's cart.
	Replace(ctx context.Context, userID string, items []Item) error
	// Delete removes the user's cart entry entirely. A later GetOrCreate
	// re-initializes it lazily.
	Delete(ctx context.Context, userID string) error
}
