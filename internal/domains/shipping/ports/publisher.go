package ports

import (
	"context"
	"fmt"
)

// Publisher announces new shipments and reports the ones still awaiting processing.
type Publisher interface {
	SendNewShipping(ctx context.Context, shippingID string) error
	// PollShipping returns outstanding shipment identifiers in no particular order.
	PollShipping(ctx context.Context) ([]string, error)
}

// PublishError signals that a shipment was persisted but its notification failed.
type PublishError struct {
	ShippingID string
	Err        error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("publish new shipment %s: %v", e.ShippingID, e.Err)
}

func (e *PublishError) Unwrap() error { return e.Err }
