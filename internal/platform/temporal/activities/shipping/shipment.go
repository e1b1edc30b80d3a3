package shipping

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	shippingdomain "github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
)

const (
	// PollShipmentsActivityName drains the outstanding shipment identifiers.
	PollShipmentsActivityName = "shipping.activities.PollShipments"
	// ProcessShipmentActivityName finalizes one shipment against its due date.
	ProcessShipmentActivityName = "shipping.activities.ProcessShipment"

	notFoundErrorType          = "ShipmentNotFound"
	invalidTransitionErrorType = "InvalidShipmentTransition"
)

// ProcessShipmentInput identifies the shipment an activity finalizes.
type ProcessShipmentInput struct {
	ShippingID string
}

// ProcessShipmentResult carries the status the shipment ended in.
type ProcessShipmentResult struct {
	ShippingID string
	Status     string
}

// Activities groups activities that operate on the shipping bounded context.
type Activities struct {
	service   shippingports.Service
	publisher shippingports.Publisher
}

// NewActivities wires the shipping service and the notification poller into the activities bundle.
func NewActivities(service shippingports.Service, publisher shippingports.Publisher) *Activities {
	return &Activities{service: service, publisher: publisher}
}

// PollShipments returns the identifiers announced since the previous poll.
func (a *Activities) PollShipments(ctx context.Context) ([]string, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.publisher == nil {
		logger.Error("poll activity not initialized")
		return nil, errors.New("poll activity not initialized")
	}
	ids, err := a.publisher.PollShipping(ctx)
	if err != nil {
		logger.Error("PollShipments activity failed", "error", err)
		return nil, err
	}
	logger.Info("PollShipments activity completed", "count", len(ids))
	return ids, nil
}

// ProcessShipment finalizes a shipment. Unknown shipments and forbidden transitions are not retried.
func (a *Activities) ProcessShipment(ctx context.Context, input ProcessShipmentInput) (*ProcessShipmentResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("process activity not initialized", "shippingId", input.ShippingID)
		return nil, errors.New("process activity not initialized")
	}
	status, err := a.service.ProcessShipping(ctx, input.ShippingID)
	if err != nil {
		logger.Error("ProcessShipment activity failed", "shippingId", input.ShippingID, "error", err)
		switch {
		case errors.Is(err, shippingports.ErrNotFound):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), notFoundErrorType, err)
		case errors.Is(err, shippingdomain.ErrInvalidTransition):
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), invalidTransitionErrorType, err)
		}
		return nil, err
	}
	logger.Info("ProcessShipment activity completed", "shippingId", input.ShippingID, "status", string(status))
	return &ProcessShipmentResult{ShippingID: input.ShippingID, Status: string(status)}, nil
}
