package checkout

import (
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/shopcart/internal/domain/cart"
	"github.com/xenking/shopcart/internal/domain/discount"
	"github.com/xenking/shopcart/internal/domain/order"
)

// --- Mock repositories ---

type mockCartRepo struct {
	carts map[string][]cart.Item
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[string][]cart.Item)}
}

func (m *mockCartRepo) GetOrCreate(_ context.Context, userID string) ([]cart.Item, error) {
	items, ok := m.carts[userID]
	if !ok {
		m.carts[userID] = []cart.Item{}
		return []cart.Item{}, nil
	}
	return slices.Clone(items), nil
}

func (m *mockCartRepo) Find(_ context.Context, userID string) ([]cart.Item, bool, error) {
	items, ok := m.carts[userID]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(items), true, nil
}

func (m *mockCartRepo) Replace(_ context.Context, userID string, items []cart.Item) error {
	m.carts[userID] = slices.Clone(items)
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, userID string) error {
	delete(m.carts, userID)
	return nil
}

type mockOrderRepo struct {
	orders []order.Order
	counts map[string]int
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{counts: make(map[string]int)}
}

func (m *mockOrderRepo) Append(_ context.Context, o *order.Order) error {
	m.orders = append(m.orders, *o)
	return nil
}

func (m *mockOrderRepo) List(_ context.Context) ([]order.Order, error) {
	return slices.Clone(m.orders), nil
}

func (m *mockOrderRepo) ListByUser(_ context.Context, userID string) ([]order.Order, error) {
	var out []order.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) CountByUser(_ context.Context, userID string) (int, error) {
	return m.counts[userID], nil
}

func (m *mockOrderRepo) IncrementCount(_ context.Context, userID string) (int, error) {
	m.counts[userID]++
	return m.counts[userID], nil
}

type mockCodeRepo struct {
	user  map[string][]discount.Code
	admin []string
}

func newMockCodeRepo() *mockCodeRepo {
	return &mockCodeRepo{user: make(map[string][]discount.Code)}
}

func (m *mockCodeRepo) CodesForUser(_ context.Context, userID string) ([]discount.Code, error) {
	return slices.Clone(m.user[userID]), nil
}

func (m *mockCodeRepo) ReplaceForUser(_ context.Context, userID string, codes []discount.Code) error {
	m.user[userID] = slices.Clone(codes)
	return nil
}

func (m *mockCodeRepo) AllUserCodes(_ context.Context) (map[string][]discount.Code, error) {
	return m.user, nil
}

func (m *mockCodeRepo) AppendAdminCode(_ context.Context, code string) error {
	m.admin = append(m.admin, code)
	return nil
}

func (m *mockCodeRepo) AdminCodes(_ context.Context) ([]string, error) {
	return m.admin, nil
}

// --- Test fixture ---

type fixture struct {
	carts  *mockCartRepo
	orders *mockOrderRepo
	codes  *mockCodeRepo
	disc   *discount.Service
	svc    *Service
}

func newFixture() *fixture {
	carts := newMockCartRepo()
	orders := newMockOrderRepo()
	codes := newMockCodeRepo()

	n := 0
	disc := discount.NewService(codes, orders, func() string {
		n++
		return fmt.Sprintf("SFX-%d", n)
	})

	return &fixture{
		carts:  carts,
		orders: orders,
		codes:  codes,
		disc:   disc,
		svc:    NewService(carts, disc, orders),
	}
}

func (f *fixture) fillCart(userID string, items ...cart.Item) {
	f.carts.carts[userID] = items
}

func item(productID, price string, qty int) cart.Item {
	return cart.Item{
		ProductID: productID,
		Name:      "Item " + productID,
		Price:     decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

// --- Tests ---

func TestCheckout_MissingCart(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Checkout(context.Background(), "u1", "")
	require.ErrorIs(t, err, ErrEmptyCart)

	// No mutation on the error path.
	assert.Empty(t, f.orders.orders)
	assert.Zero(t, f.orders.counts["u1"])
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture()
	f.fillCart("u1")

	_, err := f.svc.Checkout(context.Background(), "u1", "")
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, f.orders.orders)
}

func TestCheckout_NoDiscount(t *testing.T) {
	f := newFixture()
	f.fillCart("u1", item("p1", "100", 2))

	o, err := f.svc.Checkout(context.Background(), "u1", "")
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("200").Equal(o.TotalAmount))
	assert.False(t, o.DiscountApplied)
	assert.Empty(t, o.DiscountCode)
	assert.Equal(t, "u1", o.UserID)
	assert.NotEmpty(t, o.OrderID)
	assert.Equal(t, 1, f.orders.counts["u1"])
	require.Len(t, f.orders.orders, 1)

	// Cart entry is deleted, not emptied.
	_, ok, err := f.carts.Find(context.Background(), "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckout_InvalidCodeLeavesStateUntouched(t *testing.T) {
	f := newFixture()
	f.fillCart("u1", item("p1", "100", 2))

	_, err := f.svc.Checkout(context.Background(), "u1", "BOGUS")
	require.ErrorIs(t, err, discount.ErrInvalidCode)

	assert.Empty(t, f.orders.orders)
	assert.Zero(t, f.orders.counts["u1"])
	_, ok, findErr := f.carts.Find(context.Background(), "u1")
	require.NoError(t, findErr)
	assert.True(t, ok, "cart must survive a failed checkout")
}

func TestCheckout_FifthOrderIssuesMilestoneCode(t *testing.T) {
	f := newFixture()

	var last *order.Order
	for i := range 5 {
		f.fillCart("u1", item("p1", "100", 2))
		o, err := f.svc.Checkout(context.Background(), "u1", "")
		require.NoError(t, err, "order %d", i+1)
		if i < 4 {
			assert.Empty(t, o.NewDiscountCode, "order %d", i+1)
		}
		last = o
	}

	assert.Equal(t, 5, f.orders.counts["u1"])
	assert.NotEmpty(t, last.NewDiscountCode)

	codes := f.codes.user["u1"]
	require.Len(t, codes, 1)
	assert.Equal(t, last.NewDiscountCode, codes[0].Code)
	assert.False(t, codes[0].Expired)
}

func TestCheckout_RedeemMilestoneCode(t *testing.T) {
	f := newFixture()

	// Reach the milestone, then spend the earned code.
	for range 5 {
		f.fillCart("u1", item("p1", "100", 2))
		_, err := f.svc.Checkout(context.Background(), "u1", "")
		require.NoError(t, err)
	}
	code := f.codes.user["u1"][0].Code

	f.fillCart("u1", item("p1", "100", 2))
	o, err := f.svc.Checkout(context.Background(), "u1", code)
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("180").Equal(o.TotalAmount), "got %s", o.TotalAmount)
	assert.True(t, o.DiscountApplied)
	assert.Equal(t, code, o.DiscountCode)
	assert.True(t, f.codes.user["u1"][0].Expired)
}

func TestCheckout_ItemsSnapshot(t *testing.T) {
	f := newFixture()
	f.fillCart("u1", item("p1", "10.50", 1), item("p2", "3.25", 4))

	o, err := f.svc.Checkout(context.Background(), "u1", "")
	require.NoError(t, err)

	require.Len(t, o.Items, 2)
	assert.True(t, decimal.RequireFromString("23.50").Equal(o.TotalAmount), "got %s", o.TotalAmount)
}

func TestHistory(t *testing.T) {
	f := newFixture()

	f.fillCart("u1", item("p1", "100", 1))
	_, err := f.svc.Checkout(context.Background(), "u1", "")
	require.NoError(t, err)
	f.fillCart("u2", item("p2", "50", 1))
	_, err = f.svc.Checkout(context.Background(), "u2", "")
	require.NoError(t, err)

	orders, err := f.svc.History(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "u1", orders[0].UserID)
}
