package orders

import (
	"fmt"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eco-fashion-api/internal/cart"
	"eco-fashion-api/internal/models"
	"eco-fashion-api/internal/store"
)

var testNow = time.Date(2024, 5, 14, 10, 30, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *cart.Engine, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	require.NoError(t, st.Reset(store.Dataset{
		Categories: []models.Category{{ID: 1, Slug: "women", Name: "Women"}},
		Products: []models.Product{
			{
				ID: 1, Slug: "recycled-denim-jacket", Title: "Recycled Denim Jacket",
				Description: "Jacket.", Price: 60, DiscountPrice: 45, Category: 1,
				ImageURL: "https://images.example.com/jacket.jpg",
			},
			{
				ID: 2, Slug: "natural-rubber-sneakers", Title: "Natural Rubber Sneakers",
				Description: "Sneakers.", Price: 50, Category: 1,
				ImageURL: "https://images.example.com/sneakers.jpg",
			},
		},
	}))
	engine := New(st)
	engine.now = func() time.Time { return testNow }
	engine.randInt = func(n int) int { return 123 }
	return engine, cart.New(st), st
}

func placeRequest(session string) PlaceRequest {
	return PlaceRequest{
		SessionID:       session,
		Email:           "shopper@example.com",
		ShippingAddress: "12 Green Way",
		PaymentMethod:   "card",
	}
}

func TestPlaceRequiresAllFields(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	for _, req := range []PlaceRequest{
		{Email: "a@b.c", ShippingAddress: "x", PaymentMethod: "card"},
		{SessionID: "s", ShippingAddress: "x", PaymentMethod: "card"},
		{SessionID: "s", Email: "a@b.c", PaymentMethod: "card"},
		{SessionID: "s", Email: "a@b.c", ShippingAddress: "x"},
	} {
		_, err := engine.Place(req)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
	assert.Empty(t, engine.List())
}

func TestPlaceEmptyCart(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	_, err := engine.Place(placeRequest("sess-1"))
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, engine.List())
}

func TestPlaceComputesTotals(t *testing.T) {
	engine, carts, _ := newTestEngine(t)

	// 2 x jacket at the 45 discount price: below the free-shipping
	// threshold.
	require.NoError(t, carts.Add("sess-1", 1, nil, 2))

	order, err := engine.Place(placeRequest("sess-1"))
	require.NoError(t, err)

	assert.Equal(t, 90.0, order.Subtotal)
	assert.Equal(t, 7.99, order.Shipping)
	assert.Equal(t, 7.2, order.Tax)
	assert.Equal(t, 105.19, order.Total)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, testNow, order.CreatedAt)
	assert.Equal(t, testNow, order.UpdatedAt)

	require.Len(t, order.Items, 1)
	line := order.Items[0]
	assert.Equal(t, "Recycled Denim Jacket", line.ProductTitle)
	assert.Equal(t, 45.0, line.Price)
	assert.Equal(t, 90.0, line.TotalPrice)
	assert.Equal(t, 2, line.Quantity)
}

func TestPlaceFreeShippingAtThreshold(t *testing.T) {
	engine, carts, _ := newTestEngine(t)

	require.NoError(t, carts.Add("sess-1", 2, nil, 2)) // 2 x 50

	order, err := engine.Place(placeRequest("sess-1"))
	require.NoError(t, err)

	assert.Equal(t, 100.0, order.Subtotal)
	assert.Equal(t, 0.0, order.Shipping)
	assert.Equal(t, 8.0, order.Tax)
	assert.Equal(t, 108.0, order.Total)
}

func TestPlaceClearsOnlyTheOrderedSession(t *testing.T) {
	engine, carts, _ := newTestEngine(t)

	require.NoError(t, carts.Add("sess-1", 1, nil, 1))
	require.NoError(t, carts.Add("sess-2", 2, nil, 1))

	_, err := engine.Place(placeRequest("sess-1"))
	require.NoError(t, err)

	assert.Empty(t, carts.Items("sess-1"))
	assert.Len(t, carts.Items("sess-2"), 1)
}

func TestPlaceDropsDanglingLines(t *testing.T) {
	engine, carts, st := newTestEngine(t)

	require.NoError(t, carts.Add("sess-1", 1, nil, 1))
	require.NoError(t, carts.Add("sess-1", 2, nil, 1))
	require.NoError(t, st.Update(func(d *store.Dataset) error {
		d.Products = d.Products[:1] // sneakers no longer exist
		return nil
	}))

	order, err := engine.Place(placeRequest("sess-1"))
	require.NoError(t, err)

	// Unlike the cart read there is no placeholder: the line is gone.
	require.Len(t, order.Items, 1)
	assert.Equal(t, 1, order.Items[0].Product)
	assert.Equal(t, 45.0, order.Subtotal)
}

func TestPlaceFreezesPrices(t *testing.T) {
	engine, carts, st := newTestEngine(t)

	require.NoError(t, carts.Add("sess-1", 1, nil, 2))
	order, err := engine.Place(placeRequest("sess-1"))
	require.NoError(t, err)

	require.NoError(t, st.Update(func(d *store.Dataset) error {
		d.Products[0].DiscountPrice = 10
		return nil
	}))

	got, ok := engine.Get(strconv.Itoa(order.ID))
	require.True(t, ok)
	assert.Equal(t, 45.0, got.Items[0].Price)
	assert.Equal(t, 90.0, got.Subtotal)
}

func TestPlaceAssignsTokenAndID(t *testing.T) {
	engine, carts, _ := newTestEngine(t)

	require.NoError(t, carts.Add("sess-1", 1, nil, 1))
	order, err := engine.Place(placeRequest("sess-1"))
	require.NoError(t, err)

	assert.Equal(t, 1, order.ID)
	assert.Equal(t, fmt.Sprintf("ORD-%d-123", testNow.UnixMilli()), order.OrderID)
}

func TestGetByIDAndToken(t *testing.T) {
	engine, carts, _ := newTestEngine(t)

	require.NoError(t, carts.Add("sess-1", 1, nil, 1))
	placed, err := engine.Place(placeRequest("sess-1"))
	require.NoError(t, err)

	byID, ok := engine.Get(strconv.Itoa(placed.ID))
	require.True(t, ok)
	assert.Equal(t, placed.OrderID, byID.OrderID)

	byToken, ok := engine.Get(placed.OrderID)
	require.True(t, ok)
	assert.Equal(t, placed.ID, byToken.ID)

	_, ok = engine.Get("ORD-0-0")
	assert.False(t, ok)
	_, ok = engine.Get("999")
	assert.False(t, ok)
}

func TestListKeepsInsertionOrder(t *testing.T) {
	engine, carts, _ := newTestEngine(t)

	require.NoError(t, carts.Add("sess-1", 1, nil, 1))
	first, err := engine.Place(placeRequest("sess-1"))
	require.NoError(t, err)

	require.NoError(t, carts.Add("sess-2", 2, nil, 1))
	second, err := engine.Place(placeRequest("sess-2"))
	require.NoError(t, err)

	list := engine.List()
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
	assert.Equal(t, 2, second.ID)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 7.2, round2(90*0.08))
	assert.Equal(t, 105.19, round2(90+7.99+7.2))
	assert.Equal(t, 0.01, round2(0.005))
}
