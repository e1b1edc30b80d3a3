package application

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	cart "github.com/Apurer/go-gin-eshop/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-eshop/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-eshop/internal/domains/orders/ports"
	shippingports "github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
)

// DefaultDueDateGrace is added to now when a placement carries no due date.
const DefaultDueDateGrace = 10 * time.Second

const placementStripes = 64

// Service orchestrates order placement.
type Service struct {
	repo      ports.Repository
	shipments ports.Shipments
	now       func() time.Time
	grace     time.Duration
	stripes   [placementStripes]sync.Mutex
}

// Option customises the order service.
type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithDueDateGrace overrides DefaultDueDateGrace.
func WithDueDateGrace(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.grace = d
		}
	}
}

func NewService(repo ports.Repository, shipments ports.Shipments, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		shipments: shipments,
		now:       time.Now,
		grace:     DefaultDueDateGrace,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder opens a pending order over a non-empty cart.
func (s *Service) CreateOrder(ctx context.Context, c *cart.Cart) (*domain.Order, error) {
	order, err := domain.NewOrder(c, s.now())
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Save(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// PlaceOrder validates the shipment parameters, reserves stock and requests the shipment.
// Stock is released when no shipment was created. A shipment created but not announced keeps
// the stock debited and the order shipped while the *shippingports.PublishError is still returned.
// Placing an already shipped order returns its shipping ID without side effects.
func (s *Service) PlaceOrder(ctx context.Context, order *domain.Order, input ports.PlaceOrderInput) (string, error) {
	if order == nil {
		return "", errors.New("order is nil")
	}
	unlock := s.lock(order.ID)
	defer unlock()

	if order.IsPlaced() {
		return order.ShippingID, nil
	}
	if order.Cart == nil || order.Cart.IsEmpty() {
		return "", mapError(domain.ErrEmptyCart)
	}

	now := s.now()
	dueDate := now.Add(s.grace)
	if input.DueDate != nil {
		dueDate = *input.DueDate
	}
	if err := s.shipments.ValidateShipping(ctx, input.ShippingType, dueDate); err != nil {
		return "", err
	}

	reservation, err := order.Cart.Reserve()
	if err != nil {
		return "", err
	}
	shippingID, err := s.shipments.CreateShipping(ctx, shippingports.CreateShippingInput{
		ShippingType: input.ShippingType,
		ProductIDs:   reservation.ProductIDs(),
		OrderID:      order.ID,
		DueDate:      dueDate,
	})
	if err != nil {
		var publishErr *shippingports.PublishError
		if !errors.As(err, &publishErr) {
			reservation.Release()
			return "", err
		}
		reservation.Commit()
		order.MarkShipped(publishErr.ShippingID, now)
		return "", errors.Join(err, s.repo.Save(ctx, order))
	}

	reservation.Commit()
	order.MarkShipped(shippingID, now)
	if err := s.repo.Save(ctx, order); err != nil {
		return "", err
	}
	return shippingID, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) lock(orderID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	mu := &s.stripes[h.Sum32()%placementStripes]
	mu.Lock()
	return mu.Unlock
}

var _ ports.Service = (*Service)(nil)
