package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
)

var ErrNotFound = errors.New("shipment not found")

// CreateShippingInput carries the order snapshot a shipment is created from.
type CreateShippingInput struct {
	ShippingType domain.ShippingType
	ProductIDs   []string
	OrderID      string
	DueDate      time.Time
}

// StatusAck is the backing store's acknowledgement of a status update.
// StatusCode follows HTTP semantics; anything outside 2xx is a rejected update.
type StatusAck struct {
	StatusCode int
}

func (a StatusAck) OK() bool {
	return a.StatusCode >= 200 && a.StatusCode < 300
}

// Repository persists shipments. Transport failures are returned as-is.
type Repository interface {
	CreateShipping(ctx context.Context, input CreateShippingInput) (string, error)
	// GetShipping returns ErrNotFound for unknown identifiers.
	GetShipping(ctx context.Context, shippingID string) (*domain.Shipment, error)
	UpdateShippingStatus(ctx context.Context, shippingID string, status domain.Status) (StatusAck, error)
	// TransitionShippingStatus moves a shipment to next only while it is still in from.
	// Unknown shipments ack 404; a shipment no longer in from acks 409 and is left unchanged.
	TransitionShippingStatus(ctx context.Context, shippingID string, from, next domain.Status) (StatusAck, error)
}

// StatusLister is implemented by repositories that can enumerate shipments by status.
// The reconciler sweeps in-progress shipments whose notification was lost.
type StatusLister interface {
	ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Shipment, error)
}
