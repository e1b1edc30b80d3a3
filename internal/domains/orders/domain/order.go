package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	cart "github.com/Apurer/go-gin-eshop/internal/domains/cart/domain"
)

// Status enumerates order progression.
type Status string

const (
	StatusPending Status = "pending"
	StatusShipped Status = "shipped"
)

var ErrEmptyCart = errors.New("cart is empty")

// Order commits one cart exactly once.
type Order struct {
	ID         string
	Cart       *cart.Cart
	Status     Status
	ShippingID string
	CreatedAt  time.Time
	PlacedAt   time.Time
}

// NewOrder assigns a fresh identifier and refuses empty carts.
func NewOrder(c *cart.Cart, now time.Time) (*Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	return &Order{
		ID:        uuid.NewString(),
		Cart:      c,
		Status:    StatusPending,
		CreatedAt: now,
	}, nil
}

// IsPlaced reports whether a shipment has already been requested for the order.
func (o *Order) IsPlaced() bool {
	return o.Status == StatusShipped
}

// MarkShipped records the shipment produced by placing the order.
func (o *Order) MarkShipped(shippingID string, at time.Time) {
	o.Status = StatusShipped
	o.ShippingID = shippingID
	o.PlacedAt = at
}
