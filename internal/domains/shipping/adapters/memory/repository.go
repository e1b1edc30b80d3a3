package memory

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/domain"
	"github.com/Apurer/go-gin-eshop/internal/domains/shipping/ports"
)

var (
	_ ports.Repository   = (*Repository)(nil)
	_ ports.StatusLister = (*Repository)(nil)
)

// Repository is an in-memory shipment persistence adapter.
type Repository struct {
	mu        sync.RWMutex
	shipments map[string]*domain.Shipment
	now       func() time.Time
	newID     func() string
}

func NewRepository() *Repository {
	return &Repository{
		shipments: map[string]*domain.Shipment{},
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) CreateShipping(_ context.Context, input ports.CreateShippingInput) (string, error) {
	now := r.now()
	shipment := &domain.Shipment{
		ID:         r.newID(),
		OrderID:    input.OrderID,
		ProductIDs: append([]string(nil), input.ProductIDs...),
		Type:       input.ShippingType,
		DueDate:    input.DueDate,
		Status:     domain.StatusCreated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.shipments[shipment.ID] = shipment
	return shipment.ID, nil
}

func (r *Repository) GetShipping(_ context.Context, shippingID string) (*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	shipment, ok := r.shipments[shippingID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return clone(shipment), nil
}

// UpdateShippingStatus acknowledges with 404 for unknown shipments instead of failing the call.
func (r *Repository) UpdateShippingStatus(_ context.Context, shippingID string, status domain.Status) (ports.StatusAck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shipment, ok := r.shipments[shippingID]
	if !ok {
		return ports.StatusAck{StatusCode: http.StatusNotFound}, nil
	}
	shipment.Status = status
	shipment.UpdatedAt = r.now()
	return ports.StatusAck{StatusCode: http.StatusOK}, nil
}

func (r *Repository) TransitionShippingStatus(_ context.Context, shippingID string, from, next domain.Status) (ports.StatusAck, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shipment, ok := r.shipments[shippingID]
	if !ok {
		return ports.StatusAck{StatusCode: http.StatusNotFound}, nil
	}
	if shipment.Status != from {
		return ports.StatusAck{StatusCode: http.StatusConflict}, nil
	}
	shipment.Status = next
	shipment.UpdatedAt = r.now()
	return ports.StatusAck{StatusCode: http.StatusOK}, nil
}

// ListByStatus returns shipments currently in the given status, oldest first.
func (r *Repository) ListByStatus(_ context.Context, status domain.Status) ([]*domain.Shipment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Shipment, 0, len(r.shipments))
	for _, s := range r.shipments {
		if s.Status == status {
			list = append(list, clone(s))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func clone(s *domain.Shipment) *domain.Shipment {
	copy := *s
	copy.ProductIDs = append([]string(nil), s.ProductIDs...)
	return &copy
}
