package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-gin-eshop/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-eshop/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. Stored orders are shallow copies.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*domain.Order{}}
}

func (r *Repository) Save(_ context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	if order.ID == "" {
		return errors.New("order id is empty")
	}
	clone := *order
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[clone.ID] = &clone
	return nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *order
	return &clone, nil
}
