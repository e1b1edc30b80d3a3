package reconciler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Apurer/go-gin-eshop/internal/app/api"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
	platformobservability "github.com/Apurer/go-gin-eshop/internal/platform/observability"
)

// Deps are the collaborators a reconciliation command runs against.
type Deps struct {
	Service shippingports.Service
	// Lister is nil for repositories that cannot enumerate shipments; sweep refuses to run then.
	Lister shippingports.StatusLister
	Logger *slog.Logger
}

// depsFactory builds Deps for one invocation. concurrency <= 0 keeps the configured value.
type depsFactory func(ctx context.Context, concurrency int) (*Deps, func(), error)

func newRootCmd(factory depsFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "reconciler",
		Short:         "Finalize shipments whose due date has been reached",
		Long:          "Reconciler polls announced shipments and moves each one to completed or failed, once or on an interval.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newRunCmd(factory))
	cmd.AddCommand(newSweepCmd(factory))
	return cmd
}

// Execute runs the reconciler CLI against the environment-configured adapters.
func Execute(ctx context.Context) error {
	return newRootCmd(environmentDeps).ExecuteContext(ctx)
}

func environmentDeps(ctx context.Context, concurrency int) (*Deps, func(), error) {
	cfg, err := api.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	if concurrency > 0 {
		cfg.BatchConcurrency = concurrency
	}
	instruments, shutdown, err := platformobservability.Init(ctx, "eshop-reconciler")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	stack := api.NewShippingStack(ctx, cfg, instruments)
	deps := &Deps{Service: stack.Service, Logger: instruments.Logger}
	if lister, ok := stack.Lister(); ok {
		deps.Lister = lister
	}
	cleanup := func() {
		stack.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}
	return deps, cleanup, nil
}
