package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
	shippingworkflows "github.com/Apurer/go-gin-eshop/internal/platform/temporal/workflows/shipping"
)

var (
	_ ports.ReconciliationOrchestrator = (*TemporalReconciliation)(nil)
	_ ports.ReconciliationOrchestrator = (*InlineReconciliation)(nil)
)

// workflowStarter is the subset of client.Client the orchestrator needs.
type workflowStarter interface {
	ExecuteWorkflow(ctx context.Context, options client.StartWorkflowOptions, workflow interface{}, args ...interface{}) (client.WorkflowRun, error)
	GetWorkflow(ctx context.Context, workflowID string, runID string) client.WorkflowRun
}

// TemporalReconciliation runs reconciliation passes as Temporal workflows.
type TemporalReconciliation struct {
	client    workflowStarter
	taskQueue string
}

// NewTemporalReconciliation wires a Temporal client into the orchestrator.
func NewTemporalReconciliation(c client.Client) *TemporalReconciliation {
	return &TemporalReconciliation{client: c, taskQueue: shippingworkflows.ShipmentReconciliationTaskQueue}
}

// Reconcile starts the reconciliation workflow and waits for its summary.
func (o *TemporalReconciliation) Reconcile(ctx context.Context) (*ports.ReconciliationSummary, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal reconciliation not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:                                       fmt.Sprintf("shipment-reconciliation-%s", traceComponent),
		TaskQueue:                                o.taskQueue,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		shippingworkflows.ShipmentReconciliationWorkflowName,
		shippingworkflows.ShipmentReconciliationInput{TraceID: traceComponent},
	)
	if err != nil {
		// A pass for the same trace is already running; wait on it instead.
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if !errors.As(err, &alreadyStarted) {
			return nil, err
		}
		run = o.client.GetWorkflow(ctx, options.ID, alreadyStarted.RunId)
	}
	var summary ports.ReconciliationSummary
	if err := run.Get(ctx, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// InlineReconciliation runs the batch pass in process, for tests or when Temporal is unavailable.
type InlineReconciliation struct {
	service ports.Service
}

func NewInlineReconciliation(service ports.Service) *InlineReconciliation {
	return &InlineReconciliation{service: service}
}

func (o *InlineReconciliation) Reconcile(ctx context.Context) (*ports.ReconciliationSummary, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline reconciliation not configured")
	}
	result, err := o.service.ProcessShippingBatch(ctx)
	if err != nil {
		return nil, err
	}
	return ports.SummaryFromBatch(result), nil
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
