package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	shippingdomain "github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
)

var _ shippingports.TransitionObserver = (*TransitionMetrics)(nil)

// TransitionMetrics counts the status changes the shipping service applied.
// Reprocessing an already finalized shipment changes nothing and is not counted.
type TransitionMetrics struct {
	finalized metric.Int64Counter
}

func NewTransitionMetrics(m metric.Meter) *TransitionMetrics {
	if m == nil {
		return &TransitionMetrics{}
	}
	finalized, _ := m.Int64Counter("shipping.service.shipments_finalized",
		metric.WithDescription("Number of shipments moved to a terminal status"))
	return &TransitionMetrics{finalized: finalized}
}

func (t *TransitionMetrics) ShipmentTransitioned(ctx context.Context, _ string, from, next shippingdomain.Status) {
	if t == nil || t.finalized == nil || !next.IsTerminal() {
		return
	}
	t.finalized.Add(ctx, 1, metric.WithAttributes(
		attribute.String("shipment.status", string(next)),
		attribute.String("shipment.previous_status", string(from)),
	))
}
