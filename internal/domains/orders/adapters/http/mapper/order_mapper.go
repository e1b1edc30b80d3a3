package mapper

import (
	"time"

	ordersdomain "github.com/Apurer/go-gin-eshop/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-eshop/internal/domains/orders/ports"
	shippingdomain "github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
)

// OrderItem is one cart line of a placement request.
type OrderItem struct {
	Product  string `json:"product" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

// PlaceOrderRequest is the body of POST /v1/orders.
type PlaceOrderRequest struct {
	Items        []OrderItem `json:"items"`
	ShippingType string      `json:"shippingType" binding:"required"`
	DueDate      *time.Time  `json:"dueDate,omitempty"`
}

// Order is the transport representation of an order.
type Order struct {
	ID         string     `json:"id"`
	Status     string     `json:"status"`
	ShippingID string     `json:"shippingId,omitempty"`
	Total      string     `json:"total,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	PlacedAt   *time.Time `json:"placedAt,omitempty"`
}

// ToPlaceOrderInput extracts the shipment parameters of a request.
func ToPlaceOrderInput(req PlaceOrderRequest) ordersports.PlaceOrderInput {
	return ordersports.PlaceOrderInput{
		ShippingType: shippingdomain.ShippingType(req.ShippingType),
		DueDate:      req.DueDate,
	}
}

// FromDomainOrder converts a domain order; total is the cart value priced at placement.
func FromDomainOrder(order *ordersdomain.Order, total string) Order {
	if order == nil {
		return Order{}
	}
	out := Order{
		ID:         order.ID,
		Status:     string(order.Status),
		ShippingID: order.ShippingID,
		Total:      total,
		CreatedAt:  order.CreatedAt,
	}
	if !order.PlacedAt.IsZero() {
		placedAt := order.PlacedAt
		out.PlacedAt = &placedAt
	}
	return out
}
