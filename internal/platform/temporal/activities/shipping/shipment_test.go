package shipping

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"

	shippingmemory "github.com/Apurer/go-gin-eshop/internal/domains/shipping/adapters/memory"
	shippingapp "github.com/Apurer/go-gin-eshop/internal/domains/shipping/application"
	shippingdomain "github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
)

func newActivityEnv(t *testing.T) (*testsuite.TestActivityEnvironment, *Activities, *shippingmemory.Repository, *shippingmemory.Publisher) {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestActivityEnvironment()
	repo := shippingmemory.NewRepository()
	publisher := shippingmemory.NewPublisher()
	acts := NewActivities(shippingapp.NewService(repo, publisher), publisher)
	env.RegisterActivity(acts)
	return env, acts, repo, publisher
}

func TestPollShipmentsDrainsPublisher(t *testing.T) {
	env, acts, _, publisher := newActivityEnv(t)
	require.NoError(t, publisher.SendNewShipping(context.Background(), "s-1"))
	require.NoError(t, publisher.SendNewShipping(context.Background(), "s-2"))

	val, err := env.ExecuteActivity(acts.PollShipments)
	require.NoError(t, err)
	var ids []string
	require.NoError(t, val.Get(&ids))
	assert.Equal(t, []string{"s-1", "s-2"}, ids)
	assert.Zero(t, publisher.Pending())
}

func TestProcessShipmentCompletesInProgressShipment(t *testing.T) {
	env, acts, repo, _ := newActivityEnv(t)
	ctx := context.Background()
	id, err := repo.CreateShipping(ctx, shippingports.CreateShippingInput{
		OrderID:      "order-1",
		ShippingType: shippingdomain.TypeMeestExpress,
		DueDate:      time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	_, err = repo.UpdateShippingStatus(ctx, id, shippingdomain.StatusInProgress)
	require.NoError(t, err)

	val, err := env.ExecuteActivity(acts.ProcessShipment, ProcessShipmentInput{ShippingID: id})
	require.NoError(t, err)
	var result ProcessShipmentResult
	require.NoError(t, val.Get(&result))
	assert.Equal(t, id, result.ShippingID)
	assert.Equal(t, string(shippingdomain.StatusCompleted), result.Status)
}

func TestProcessShipmentNonRetryableErrors(t *testing.T) {
	env, acts, repo, _ := newActivityEnv(t)
	created, err := repo.CreateShipping(context.Background(), shippingports.CreateShippingInput{
		OrderID:      "order-2",
		ShippingType: shippingdomain.TypeSelfPickup,
		DueDate:      time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	cases := map[string]struct {
		shippingID string
		errType    string
	}{
		"unknown shipment": {shippingID: "ghost", errType: notFoundErrorType},
		"still in created": {shippingID: created, errType: invalidTransitionErrorType},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := env.ExecuteActivity(acts.ProcessShipment, ProcessShipmentInput{ShippingID: tc.shippingID})
			require.Error(t, err)
			var appErr *temporal.ApplicationError
			require.True(t, errors.As(err, &appErr))
			assert.True(t, appErr.NonRetryable())
			assert.Equal(t, tc.errType, appErr.Type())
		})
	}
}

func TestActivitiesRequireDependencies(t *testing.T) {
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestActivityEnvironment()
	acts := NewActivities(nil, nil)
	env.RegisterActivity(acts)

	_, err := env.ExecuteActivity(acts.PollShipments)
	require.Error(t, err)
	_, err = env.ExecuteActivity(acts.ProcessShipment, ProcessShipmentInput{ShippingID: "x"})
	require.Error(t, err)
}
