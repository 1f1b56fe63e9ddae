// Package checkout implements the composite checkout operation: it reads the
// cart, applies a discount code, records the order, and triggers milestone
// code issuance.
package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/shopcart/internal/domain/cart"
	"github.com/xenking/shopcart/internal/domain/discount"
	"github.com/xenking/shopcart/internal/domain/order"
)

// ErrEmptyCart is returned when checkout is attempted with no cart or an
// empty one.
var ErrEmptyCart = errors.New("cart is empty")

// discountFactor is the flat multiplier applied when a valid code is
// redeemed: 10% off, no stacking, no minimum order.
var discountFactor = decimal.RequireFromString("0.9")

// Service composes the cart, discount, and order components into the
// checkout operation.
type Service struct {
	carts     cart.Repository
	discounts *discount.Service
	orders    order.Repository
	now       func() time.Time

	// Checkouts for the same user are serialized so two concurrent requests
	// cannot both consume the same cart.
	lockMu sync.Mutex
	locks  map[string]*sync.Mutex
}

// NewService creates a checkout Service with the required dependencies.
func NewService(carts cart.Repository, discounts *discount.Service, orders order.Repository) *Service {
	return &Service{
		carts:     carts,
		discounts: discounts,
		orders:    orders,
		now:       time.Now,
		locks:     make(map[string]*sync.Mutex),
	}
}

// userLock returns the mutex serializing checkouts for the given user.
func (s *Service) userLock(userID string) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	mu, ok := s.locks[userID]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[userID] = mu
	}
	return mu
}

// Checkout places an order for the user's current cart. The step order is
// strict: every precondition failure aborts before any state is mutated.
//
//  1. Missing or empty cart fails with ErrEmptyCart.
//  2. A provided discount code is validated and consumed; an unknown or
//     expired code fails with discount.ErrInvalidCode, leaving the cart and
//     all codes untouched.
//  3. The order count is incremented, a milestone code is issued when the
//     new count is a multiple of five, the order is appended to the ledger,
//     and the cart entry is deleted.
func (s *Service) Checkout(ctx context.Context, userID, discountCode string) (*order.Order, error) {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	items, ok, err := s.carts.Find(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "find cart")
	}
	if !ok || len(items) == 0 {
		return nil, ErrEmptyCart
	}

	totalAmount := cart.Subtotal(items)

	discountApplied := false
	if discountCode != "" {
		if err := s.discounts.ValidateAndConsume(ctx, userID, discountCode); err != nil {
			return nil, err
		}
		discountApplied = true
		totalAmount = totalAmount.Mul(discountFactor)
	}

	newCount, err := s.orders.IncrementCount(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "increment order count")
	}

	newCode, err := s.discounts.IssueOnMilestone(ctx, userID, newCount)
	if err != nil {
		return nil, errors.Wrap(err, "issue milestone code")
	}

	o := &order.Order{
		OrderID:         "ORDER-" + uuid.New().String(),
		UserID:          userID,
		Items:           items,
		TotalAmount:     totalAmount,
		DiscountApplied: discountApplied,
		NewDiscountCode: newCode,
		CreatedAt:       s.now(),
	}
	if discountApplied {
		o.DiscountCode = discountCode
	}

	if err := s.orders.Append(ctx, o); err != nil {
		return nil, errors.Wrap(err, "append order")
	}
	if err := s.carts.Delete(ctx, userID); err != nil {
		return nil, errors.Wrap(err, "delete cart")
	}

	return o, nil
}

// History returns the user's completed orders, oldest first.
func (s *Service) History(ctx context.Context, userID string) ([]order.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}
