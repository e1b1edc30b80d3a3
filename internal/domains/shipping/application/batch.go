package application

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
)

// ProcessShippingBatch polls outstanding shipments and finalizes each one.
// Items are isolated: one failure is recorded in its outcome and never stops the others.
// Only a failed poll fails the whole call.
func (s *Service) ProcessShippingBatch(ctx context.Context) (*ports.BatchResult, error) {
	ids, err := s.publisher.PollShipping(ctx)
	if err != nil {
		return nil, err
	}
	outcomes := make([]ports.Outcome, len(ids))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			outcome := ports.Outcome{ShippingID: id}
			if err := ctx.Err(); err != nil {
				outcome.Err = err
			} else {
				outcome.Status, outcome.Err = s.ProcessShipping(ctx, id)
			}
			outcomes[i] = outcome
			return nil
		})
	}
	_ = g.Wait()

	return &ports.BatchResult{Outcomes: outcomes}, nil
}
