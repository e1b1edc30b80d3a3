package ports

import (
	"context"
	"time"

	cart "github.com/Apurer/go-gin-eshop/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-eshop/internal/domains/orders/domain"
	shippingdomain "github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
)

// Shipments is the part of the shipping service an order needs.
type Shipments interface {
	ValidateShipping(ctx context.Context, shippingType shippingdomain.ShippingType, dueDate time.Time) error
	CreateShipping(ctx context.Context, input shippingports.CreateShippingInput) (string, error)
}

// PlaceOrderInput carries the shipment parameters of a placement. A nil DueDate uses the default grace window.
type PlaceOrderInput struct {
	ShippingType shippingdomain.ShippingType
	DueDate      *time.Time
}

// Service exposes order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, c *cart.Cart) (*domain.Order, error)
	PlaceOrder(ctx context.Context, order *domain.Order, input PlaceOrderInput) (string, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
}
