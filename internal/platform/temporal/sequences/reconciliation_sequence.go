package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
	shippingactivities "github.com/Apurer/go-gin-eshop/internal/platform/temporal/activities/shipping"
)

// RunShipmentReconciliationSequence polls once, then finalizes every polled shipment concurrently.
// A failing shipment only fills its own outcome.
func RunShipmentReconciliationSequence(ctx workflow.Context) (*shippingports.ReconciliationSummary, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("shipment reconciliation sequence started")
	pollOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    3,
		},
	}
	processOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}

	var ids []string
	if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, pollOptions), shippingactivities.PollShipmentsActivityName).Get(ctx, &ids); err != nil {
		logger.Error("shipment reconciliation poll failed", "error", err)
		return nil, err
	}

	processCtx := workflow.WithActivityOptions(ctx, processOptions)
	futures := make([]workflow.Future, len(ids))
	for i, id := range ids {
		futures[i] = workflow.ExecuteActivity(processCtx, shippingactivities.ProcessShipmentActivityName,
			shippingactivities.ProcessShipmentInput{ShippingID: id})
	}

	summary := &shippingports.ReconciliationSummary{Outcomes: make([]shippingports.ReconciliationOutcome, len(ids))}
	failed := 0
	for i, future := range futures {
		outcome := shippingports.ReconciliationOutcome{ShippingID: ids[i]}
		var result shippingactivities.ProcessShipmentResult
		if err := future.Get(ctx, &result); err != nil {
			outcome.Error = err.Error()
			failed++
		} else {
			outcome.Status = result.Status
		}
		summary.Outcomes[i] = outcome
	}
	logger.Info("shipment reconciliation sequence completed", "count", len(ids), "failed", failed)
	return summary, nil
}
