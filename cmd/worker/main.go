package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-eshop/internal/app/api"
	platformobservability "github.com/Apurer/go-gin-eshop/internal/platform/observability"
	shippingactivities "github.com/Apurer/go-gin-eshop/internal/platform/temporal/activities/shipping"
	shippingworkflows "github.com/Apurer/go-gin-eshop/internal/platform/temporal/workflows/shipping"
)

func main() {
	ctx := context.Background()
	const serviceName = "eshop-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := api.LoadConfig()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.TemporalDisabled {
		logger.Error("TEMPORAL_DISABLED is set; the worker has nothing to serve")
		os.Exit(1)
	}

	shipping := api.NewShippingStack(ctx, cfg, instruments)
	defer shipping.Close()
	shippingActivities := shippingactivities.NewActivities(shipping.Service, shipping.Publisher)

	temporalClient, err := api.ConnectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, shippingworkflows.ShipmentReconciliationTaskQueue, worker.Options{
		MaxConcurrentActivityExecutionSize: cfg.BatchConcurrency,
	})
	w.RegisterWorkflowWithOptions(shippingworkflows.ShipmentReconciliationWorkflow, workflow.RegisterOptions{Name: shippingworkflows.ShipmentReconciliationWorkflowName})
	w.RegisterActivityWithOptions(shippingActivities.PollShipments, activity.RegisterOptions{Name: shippingactivities.PollShipmentsActivityName})
	w.RegisterActivityWithOptions(shippingActivities.ProcessShipment, activity.RegisterOptions{Name: shippingactivities.ProcessShipmentActivityName})

	logger.Info("worker listening", slog.String("taskQueue", shippingworkflows.ShipmentReconciliationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
