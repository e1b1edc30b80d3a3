package application

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
)

// DefaultBatchConcurrency bounds how many shipments a batch pass finalizes at once.
const DefaultBatchConcurrency = 8

// Service owns the shipment lifecycle.
type Service struct {
	repo        ports.Repository
	publisher   ports.Publisher
	now         func() time.Time
	concurrency int
	observer    ports.TransitionObserver
}

// Option customises the shipping service.
type Option func(*Service)

// WithClock overrides the time source used for due-date checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithBatchConcurrency sets the number of shipments processed in parallel by ProcessShippingBatch.
func WithBatchConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// WithTransitionObserver reports each applied status change to o.
func WithTransitionObserver(o ports.TransitionObserver) Option {
	return func(s *Service) {
		s.observer = o
	}
}

func NewService(repo ports.Repository, publisher ports.Publisher, opts ...Option) *Service {
	s := &Service{
		repo:        repo,
		publisher:   publisher,
		now:         time.Now,
		concurrency: DefaultBatchConcurrency,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ValidateShipping runs the side-effect free checks performed by CreateShipping.
func (s *Service) ValidateShipping(_ context.Context, shippingType domain.ShippingType, dueDate time.Time) error {
	if err := domain.ValidateShippingType(shippingType); err != nil {
		return mapError(err)
	}
	if err := domain.ValidateDueDate(dueDate, s.now()); err != nil {
		return mapError(err)
	}
	return nil
}

// CreateShipping persists a shipment, moves it to in progress and announces it.
// A failed announcement leaves the record in progress and returns *ports.PublishError.
func (s *Service) CreateShipping(ctx context.Context, input ports.CreateShippingInput) (string, error) {
	if err := s.ValidateShipping(ctx, input.ShippingType, input.DueDate); err != nil {
		return "", err
	}
	shippingID, err := s.repo.CreateShipping(ctx, input)
	if err != nil {
		return "", err
	}
	if err := s.updateStatus(ctx, shippingID, domain.StatusInProgress); err != nil {
		return "", err
	}
	s.observe(ctx, shippingID, domain.StatusCreated, domain.StatusInProgress)
	if err := s.publisher.SendNewShipping(ctx, shippingID); err != nil {
		return "", &ports.PublishError{ShippingID: shippingID, Err: err}
	}
	return shippingID, nil
}

func (s *Service) CheckStatus(ctx context.Context, shippingID string) (domain.Status, error) {
	shipment, err := s.repo.GetShipping(ctx, shippingID)
	if err != nil {
		return "", err
	}
	return shipment.Status, nil
}

// ProcessShipping finalizes a shipment: failed when its due date has passed, completed otherwise.
// Shipments already in a terminal state are returned unchanged, including when a
// concurrent caller finalizes the shipment between the read and the write.
func (s *Service) ProcessShipping(ctx context.Context, shippingID string) (domain.Status, error) {
	shipment, err := s.repo.GetShipping(ctx, shippingID)
	if err != nil {
		return "", err
	}
	if shipment.Status.IsTerminal() {
		return shipment.Status, nil
	}
	next := shipment.Resolve(s.now())
	if !shipment.Status.CanTransitionTo(next) {
		return "", fmt.Errorf("%w: shipment %s from %q to %q", domain.ErrInvalidTransition, shippingID, shipment.Status, next)
	}
	ack, err := s.repo.TransitionShippingStatus(ctx, shippingID, shipment.Status, next)
	if err != nil {
		return "", err
	}
	if ack.StatusCode == http.StatusConflict {
		return s.currentAfterConflict(ctx, shippingID)
	}
	if !ack.OK() {
		return "", fmt.Errorf("%w: shipment %s to %q returned status %d", ErrStatusUpdateRejected, shippingID, next, ack.StatusCode)
	}
	s.observe(ctx, shippingID, shipment.Status, next)
	return next, nil
}

func (s *Service) currentAfterConflict(ctx context.Context, shippingID string) (domain.Status, error) {
	current, err := s.repo.GetShipping(ctx, shippingID)
	if err != nil {
		return "", err
	}
	if current.Status.IsTerminal() {
		return current.Status, nil
	}
	return "", fmt.Errorf("%w: shipment %s moved to %q while processing", domain.ErrInvalidTransition, shippingID, current.Status)
}

func (s *Service) observe(ctx context.Context, shippingID string, from, next domain.Status) {
	if s.observer != nil {
		s.observer.ShipmentTransitioned(ctx, shippingID, from, next)
	}
}

func (s *Service) updateStatus(ctx context.Context, shippingID string, status domain.Status) error {
	ack, err := s.repo.UpdateShippingStatus(ctx, shippingID, status)
	if err != nil {
		return err
	}
	if !ack.OK() {
		return fmt.Errorf("%w: shipment %s to %q returned status %d", ErrStatusUpdateRejected, shippingID, status, ack.StatusCode)
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
