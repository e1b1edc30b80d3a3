package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-eshop/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository keeps placed and pending orders for lookup.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}
