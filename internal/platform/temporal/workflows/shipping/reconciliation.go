package shipping

import (
	"go.temporal.io/sdk/workflow"

	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
	"github.com/Apurer/go-gin-eshop/internal/platform/temporal/sequences"
)

const (
	// ShipmentReconciliationTaskQueue is served by cmd/worker.
	ShipmentReconciliationTaskQueue = "SHIPMENT_RECONCILIATION"
	// ShipmentReconciliationWorkflowName is the registered workflow type.
	ShipmentReconciliationWorkflowName = "ShipmentReconciliationWorkflow"
)

// ShipmentReconciliationInput correlates a run with the trace that started it.
type ShipmentReconciliationInput struct {
	TraceID string
}

// ShipmentReconciliationWorkflow runs one durable batch reconciliation pass.
func ShipmentReconciliationWorkflow(ctx workflow.Context, input ShipmentReconciliationInput) (*shippingports.ReconciliationSummary, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("shipment reconciliation workflow started", "traceId", input.TraceID)
	summary, err := sequences.RunShipmentReconciliationSequence(ctx)
	if err != nil {
		logger.Error("shipment reconciliation workflow failed", "traceId", input.TraceID, "error", err)
		return nil, err
	}
	return summary, nil
}
