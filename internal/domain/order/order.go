package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/shopcart/internal/domain/cart"
)

// Order represents a completed checkout. Orders are immutable once appended
// to the ledger.
type Order struct {
	OrderID         string
	UserID          string
	Items           []cart.Item
	TotalAmount     decimal.Decimal
	DiscountApplied bool
	// DiscountCode is the code redeemed on this order, set only when a
	// discount was actually applied.
	DiscountCode string
	// NewDiscountCode is the milestone code issued by this order, if any.
	NewDiscountCode string
	CreatedAt       time.Time
}

// Subtotal returns the pre-discount sum of the order's items.
func (o *Order) Subtotal() decimal.Decimal {
	return cart.Subtotal(o.Items)
}

// Repository defines the append-only order ledger and the per-user order
// counters.
type Repository interface {
	// Append adds a completed order to the ledger.
	Append(ctx context.Context, o *Order) error
	// List returns every order in the ledger, oldest first.
	List(ctx context.Context) ([]Order, error)
	// ListByUser returns the user's orders, oldest first.
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	// CountByUser returns the user's completed order count. Absent means 0.
	CountByUser(ctx context.Context, userID string) (int, error)
	// IncrementCount adds 1 to the user's order count and returns the new
	// value.
	IncrementCount(ctx context.Context, userID string) (int, error)
}
