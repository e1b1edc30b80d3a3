package ports

import (
	"context"
	"time"

	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
)

// Outcome is the result of processing one polled shipment.
type Outcome struct {
	ShippingID string
	Status     domain.Status
	Err        error
}

// BatchResult aggregates per-shipment outcomes in polled order.
type BatchResult struct {
	Outcomes []Outcome
}

func (r *BatchResult) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

func (r *BatchResult) Failed() int {
	return len(r.Outcomes) - r.Succeeded()
}

// TransitionObserver is told about every status change the service actually applied.
type TransitionObserver interface {
	ShipmentTransitioned(ctx context.Context, shippingID string, from, next domain.Status)
}

// Service exposes the shipment lifecycle to orders and adapters.
type Service interface {
	ValidateShipping(ctx context.Context, shippingType domain.ShippingType, dueDate time.Time) error
	CreateShipping(ctx context.Context, input CreateShippingInput) (string, error)
	CheckStatus(ctx context.Context, shippingID string) (domain.Status, error)
	ProcessShipping(ctx context.Context, shippingID string) (domain.Status, error)
	ProcessShippingBatch(ctx context.Context) (*BatchResult, error)
}
