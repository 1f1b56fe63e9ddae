package cart

import (
	"context"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock repository ---

type mockCartRepo struct {
	carts map[string][]Item
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{carts: make(map[string][]Item)}
}

func (m *mockCartRepo) GetOrCreate(_ context.Context, userID string) ([]Item, error) {
	items, ok := m.carts[userID]
	if !ok {
		m.carts[userID] = []Item{}
		return []Item{}, nil
	}
	return slices.Clone(items), nil
}

func (m *mockCartRepo) Find(_ context.Context, userID string) ([]Item, bool, error) {
	items, ok := m.carts[userID]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(items), true, nil
}

func (m *mockCartRepo) Replace(_ context.Context, userID string, items []Item) error {
	m.carts[userID] = slices.Clone(items)
	return nil
}

func (m *mockCartRepo) Delete(_ context.Context, userID string) error {
	delete(m.carts, userID)
	return nil
}

// --- Helpers ---

func testItem(productID string, price string, qty int) Item {
	return Item{
		ProductID: productID,
		Name:      "Item " + productID,
		Price:     decimal.RequireFromString(price),
		Quantity:  qty,
	}
}

// --- Tests ---

func TestGet_LazilyCreatesEmptyCart(t *testing.T) {
	repo := newMockCartRepo()
	svc := NewService(repo)

	items, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, items)

	_, ok, err := repo.Find(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAddItem_AppendsNewItem(t *testing.T) {
	svc := NewService(newMockCartRepo())

	items, err := svc.AddItem(context.Background(), "u1", testItem("p1", "100", 2))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddItem_MergesExistingProduct(t *testing.T) {
	svc := NewService(newMockCartRepo())

	_, err := svc.AddItem(context.Background(), "u1", testItem("p1", "100", 2))
	require.NoError(t, err)

	items, err := svc.AddItem(context.Background(), "u1", testItem("p1", "100", 3))
	require.NoError(t, err)

	// No duplicate entry, quantity incremented by exactly the added amount.
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddItem_RejectsMissingAndZeroFields(t *testing.T) {
	svc := NewService(newMockCartRepo())
	ctx := context.Background()

	cases := map[string]Item{
		"empty product id": {Name: "x", Price: decimal.NewFromInt(10), Quantity: 1},
		"empty name":       {ProductID: "p1", Price: decimal.NewFromInt(10), Quantity: 1},
		"zero price":       {ProductID: "p1", Name: "x", Price: decimal.Zero, Quantity: 1},
		"negative price":   {ProductID: "p1", Name: "x", Price: decimal.NewFromInt(-1), Quantity: 1},
		"zero quantity":    {ProductID: "p1", Name: "x", Price: decimal.NewFromInt(10)},
	}
	for name, it := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.AddItem(ctx, "u1", it)
			require.ErrorIs(t, err, ErrMissingFields)
		})
	}
}

func TestUpdateQuantity_SetsQuantity(t *testing.T) {
	svc := NewService(newMockCartRepo())
	_, err := svc.AddItem(context.Background(), "u1", testItem("p1", "100", 2))
	require.NoError(t, err)

	items, err := svc.UpdateQuantity(context.Background(), "u1", "p1", 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestUpdateQuantity_ZeroRemovesItem(t *testing.T) {
	svc := NewService(newMockCartRepo())
	_, err := svc.AddItem(context.Background(), "u1", testItem("p1", "100", 2))
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "u1", testItem("p2", "50", 1))
	require.NoError(t, err)

	items, err := svc.UpdateQuantity(context.Background(), "u1", "p1", 0)
	require.NoError(t, err)

	// Cart length decreases by exactly 1.
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)
}

func TestUpdateQuantity_CartNotFound(t *testing.T) {
	svc := NewService(newMockCartRepo())

	_, err := svc.UpdateQuantity(context.Background(), "nobody", "p1", 1)
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestUpdateQuantity_ItemNotFound(t *testing.T) {
	svc := NewService(newMockCartRepo())
	_, err := svc.AddItem(context.Background(), "u1", testItem("p1", "100", 2))
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(context.Background(), "u1", "p2", 1)
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveItem_FiltersProduct(t *testing.T) {
	svc := NewService(newMockCartRepo())
	_, err := svc.AddItem(context.Background(), "u1", testItem("p1", "100", 2))
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "u1", testItem("p2", "50", 1))
	require.NoError(t, err)

	items, err := svc.RemoveItem(context.Background(), "u1", "p1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ProductID)
}

func TestRemoveItem_AbsentProductIsIdempotent(t *testing.T) {
	svc := NewService(newMockCartRepo())
	_, err := svc.AddItem(context.Background(), "u1", testItem("p1", "100", 2))
	require.NoError(t, err)

	items, err := svc.RemoveItem(context.Background(), "u1", "p9")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestRemoveItem_CartNotFound(t *testing.T) {
	svc := NewService(newMockCartRepo())

	_, err := svc.RemoveItem(context.Background(), "nobody", "p1")
	require.ErrorIs(t, err, ErrCartNotFound)
}

func TestSubtotal(t *testing.T) {
	items := []Item{
		testItem("p1", "100", 2),
		testItem("p2", "19.99", 3),
	}
	assert.True(t, decimal.RequireFromString("259.97").Equal(Subtotal(items)))
}
