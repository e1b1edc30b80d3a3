package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cart "github.com/Apurer/go-gin-eshop/internal/domains/cart/domain"
	catalog "github.com/Apurer/go-gin-eshop/internal/domains/catalog/domain"
)

func filledCart(t *testing.T) *cart.Cart {
	t.Helper()
	p, err := catalog.NewProduct("Widget", decimal.NewFromInt(50), 10)
	require.NoError(t, err)
	c := cart.NewCart()
	require.NoError(t, c.AddProduct(p, 1))
	return c
}

func TestNewOrder_RejectsEmptyCart(t *testing.T) {
	_, err := NewOrder(cart.NewCart(), time.Now())
	require.ErrorIs(t, err, ErrEmptyCart)

	_, err = NewOrder(nil, time.Now())
	require.ErrorIs(t, err, ErrEmptyCart)
}

func TestNewOrder_UniqueIDs(t *testing.T) {
	now := time.Now()
	first, err := NewOrder(filledCart(t), now)
	require.NoError(t, err)
	second, err := NewOrder(filledCart(t), now)
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, StatusPending, first.Status)
	assert.False(t, first.IsPlaced())
}

func TestMarkShipped(t *testing.T) {
	placedAt := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	order, err := NewOrder(filledCart(t), placedAt)
	require.NoError(t, err)

	order.MarkShipped("ship-1", placedAt)
	assert.True(t, order.IsPlaced())
	assert.Equal(t, "ship-1", order.ShippingID)
	assert.Equal(t, placedAt, order.PlacedAt)
}
