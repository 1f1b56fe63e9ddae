// Package report provides the read-only admin aggregation over the order
// ledger.
package report

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/shopcart/internal/domain/discount"
	"github.com/xenking/shopcart/internal/domain/order"
)

// Summary is the aggregate view of all completed orders plus the raw code
// state, unfiltered and unpaginated.
type Summary struct {
	TotalOrders         int
	TotalItemsPurchased int
	TotalPurchaseAmount decimal.Decimal
	TotalDiscountAmount decimal.Decimal
	Orders              []order.Order
	UserDiscounts       map[string][]discount.Code
	AdminDiscountCodes  []string
}

// Service computes admin summaries from the order ledger and code pools.
type Service struct {
	orders order.Repository
	codes  discount.Repository
}

// NewService creates a report Service with the required dependencies.
func NewService(orders order.Repository, codes discount.Repository) *Service {
	return &Service{orders: orders, codes: codes}
}

// Summary scans the full ledger. The discount amount per order is the
// difference between the pre-discount item sum and the recorded total.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}

	items := 0
	purchased := decimal.Zero
	discounted := decimal.Zero
	for i := range orders {
		o := &orders[i]
		for _, it := range o.Items {
			items += it.Quantity
		}
		purchased = purchased.Add(o.TotalAmount)
		if o.DiscountApplied {
			discounted = discounted.Add(o.Subtotal().Sub(o.TotalAmount))
		}
	}

	userCodes, err := s.codes.AllUserCodes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list user codes")
	}
	adminCodes, err := s.codes.AdminCodes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list admin codes")
	}

	return &Summary{
		TotalOrders:         len(orders),
		TotalItemsPurchased: items,
		TotalPurchaseAmount: purchased,
		TotalDiscountAmount: discounted,
		Orders:              orders,
		UserDiscounts:       userCodes,
		AdminDiscountCodes:  adminCodes,
	}, nil
}
