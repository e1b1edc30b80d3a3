package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Apurer/go-gin-eshop/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-eshop/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog. It hands out the shared *Product instances
// so that every cart contends on the same stock counter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewRepository(products ...*domain.Product) *Repository {
	r := &Repository{products: map[string]*domain.Product{}}
	for _, p := range products {
		if p != nil {
			r.products[p.Key()] = p
		}
	}
	return r
}

func (r *Repository) Save(_ context.Context, product *domain.Product) error {
	if product == nil {
		return errors.New("product is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.Key()] = product
	return nil
}

func (r *Repository) GetByName(_ context.Context, name string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[name]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return p, nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name() < list[j].Name() })
	return list, nil
}
