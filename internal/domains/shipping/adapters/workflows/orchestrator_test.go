package workflows

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	shippingmemory "github.com/Apurer/go-gin-eshop/internal/domains/shipping/adapters/memory"
	shippingapp "github.com/Apurer/go-gin-eshop/internal/domains/shipping/application"
	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
	shippingworkflows "github.com/Apurer/go-gin-eshop/internal/platform/temporal/workflows/shipping"
)

type fakeRun struct {
	client.WorkflowRun
	summary ports.ReconciliationSummary
}

func (r *fakeRun) Get(_ context.Context, valuePtr interface{}) error {
	*(valuePtr.(*ports.ReconciliationSummary)) = r.summary
	return nil
}

type fakeStarter struct {
	options  client.StartWorkflowOptions
	workflow interface{}
	err      error
	run      *fakeRun
	joined   string
}

func (f *fakeStarter) GetWorkflow(_ context.Context, workflowID string, runID string) client.WorkflowRun {
	f.joined = workflowID + "/" + runID
	return f.run
}

func (f *fakeStarter) ExecuteWorkflow(_ context.Context, options client.StartWorkflowOptions, workflow interface{}, _ ...interface{}) (client.WorkflowRun, error) {
	f.options = options
	f.workflow = workflow
	if f.err != nil {
		return nil, f.err
	}
	return f.run, nil
}

func TestTemporalReconciliation_StartsWorkflow(t *testing.T) {
	starter := &fakeStarter{run: &fakeRun{summary: ports.ReconciliationSummary{
		Outcomes: []ports.ReconciliationOutcome{{ShippingID: "a", Status: "completed"}},
	}}}
	o := &TemporalReconciliation{client: starter, taskQueue: shippingworkflows.ShipmentReconciliationTaskQueue}

	summary, err := o.Reconcile(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, shippingworkflows.ShipmentReconciliationTaskQueue, starter.options.TaskQueue)
	assert.True(t, strings.HasPrefix(starter.options.ID, "shipment-reconciliation-"))
	assert.Equal(t, shippingworkflows.ShipmentReconciliationWorkflowName, starter.workflow)
}

func TestTemporalReconciliation_JoinsRunningPass(t *testing.T) {
	starter := &fakeStarter{
		err: serviceerror.NewWorkflowExecutionAlreadyStarted("already running", "req-1", "run-7"),
		run: &fakeRun{summary: ports.ReconciliationSummary{
			Outcomes: []ports.ReconciliationOutcome{{ShippingID: "b", Status: "failed"}},
		}},
	}
	o := &TemporalReconciliation{client: starter, taskQueue: shippingworkflows.ShipmentReconciliationTaskQueue}

	summary, err := o.Reconcile(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, "b", summary.Outcomes[0].ShippingID)
	assert.Equal(t, starter.options.ID+"/run-7", starter.joined)
	assert.True(t, starter.options.WorkflowExecutionErrorWhenAlreadyStarted)
}

func TestTemporalReconciliation_StartFailure(t *testing.T) {
	o := &TemporalReconciliation{client: &fakeStarter{err: errors.New("unavailable")}}
	_, err := o.Reconcile(context.Background())
	require.EqualError(t, err, "unavailable")

	var unset *TemporalReconciliation
	_, err = unset.Reconcile(context.Background())
	require.Error(t, err)
}

func TestInlineReconciliation_RunsBatch(t *testing.T) {
	publisher := shippingmemory.NewPublisher()
	svc := shippingapp.NewService(shippingmemory.NewRepository(), publisher)
	require.NoError(t, publisher.SendNewShipping(context.Background(), "missing"))

	summary, err := NewInlineReconciliation(svc).Reconcile(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, "missing", summary.Outcomes[0].ShippingID)
	assert.Contains(t, summary.Outcomes[0].Error, "not found")
}
