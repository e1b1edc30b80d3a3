package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-eshop/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository exposes the live product instances used by carts.
type Repository interface {
	Save(ctx context.Context, product *domain.Product) error
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}
