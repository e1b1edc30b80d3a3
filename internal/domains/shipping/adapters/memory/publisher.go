package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
)

var _ ports.Publisher = (*Publisher)(nil)

// Publisher is an in-process notification queue. PollShipping drains what was sent so far.
type Publisher struct {
	mu      sync.Mutex
	pending []string
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) SendNewShipping(_ context.Context, shippingID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, shippingID)
	return nil
}

func (p *Publisher) PollShipping(_ context.Context) ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ids := p.pending
	p.pending = nil
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// Pending reports how many notifications have not been polled yet.
func (p *Publisher) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
