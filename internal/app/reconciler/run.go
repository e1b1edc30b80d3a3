package reconciler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	shippinghttpmapper "github.com/Apurer/go-gin-eshop/internal/domains/shipping/adapters/http/mapper"
	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
)

func newRunCmd(factory depsFactory) *cobra.Command {
	var (
		interval    time.Duration
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the batch reconciliation pass",
		Long:  "Poll outstanding shipments and finalize each one. With --interval the pass repeats until interrupted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval < 0 {
				return fmt.Errorf("--interval must not be negative")
			}
			ctx := cmd.Context()
			deps, cleanup, err := factory(ctx, concurrency)
			if err != nil {
				return err
			}
			defer cleanup()

			if interval == 0 {
				return runPass(ctx, deps, cmd.OutOrStdout())
			}
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				if err := runPass(ctx, deps, cmd.OutOrStdout()); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					deps.Logger.Error("reconciliation pass failed", slog.String("error", err.Error()))
				}
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "repeat the pass on this interval (0 runs once)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "shipments finalized in parallel (default from SHIPMENT_BATCH_CONCURRENCY)")
	return cmd
}

func runPass(ctx context.Context, deps *Deps, out io.Writer) error {
	result, err := deps.Service.ProcessShippingBatch(ctx)
	if err != nil {
		return fmt.Errorf("poll shipments: %w", err)
	}
	deps.Logger.Info("reconciliation pass completed",
		slog.Int("processed", len(result.Outcomes)), slog.Int("failed", result.Failed()))
	return writeSummary(out, shippingports.SummaryFromBatch(result))
}

func newSweepCmd(factory depsFactory) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Finalize in-progress shipments straight from the repository",
		Long:  "Process shipments left in progress whose notification never reached the broker. Without POSTGRES_DSN the in-memory repository only holds shipments created by this process.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			deps, cleanup, err := factory(ctx, 0)
			if err != nil {
				return err
			}
			defer cleanup()
			if deps.Lister == nil {
				return errors.New("shipment repository cannot list shipments by status")
			}

			pending, err := deps.Lister.ListByStatus(ctx, domain.StatusInProgress)
			if err != nil {
				return fmt.Errorf("list in-progress shipments: %w", err)
			}
			if limit > 0 && len(pending) > limit {
				pending = pending[:limit]
			}
			result := &shippingports.BatchResult{Outcomes: make([]shippingports.Outcome, 0, len(pending))}
			for _, shipment := range pending {
				outcome := shippingports.Outcome{ShippingID: shipment.ID}
				outcome.Status, outcome.Err = deps.Service.ProcessShipping(ctx, shipment.ID)
				result.Outcomes = append(result.Outcomes, outcome)
			}
			deps.Logger.Info("sweep completed", slog.Int("processed", len(result.Outcomes)), slog.Int("failed", result.Failed()))
			return writeSummary(cmd.OutOrStdout(), shippingports.SummaryFromBatch(result))
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "maximum shipments to process (0 for all)")
	return cmd
}

func writeSummary(out io.Writer, summary *shippingports.ReconciliationSummary) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(shippinghttpmapper.FromSummary(summary))
}
