package domain

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName         = errors.New("product name is required")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrNegativeAmount    = errors.New("available amount cannot be negative")
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports a purchase or reservation beyond the available stock.
type InsufficientStockError struct {
	Product   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: requested %d, available %d", e.Product, e.Requested, e.Available)
}

// Is lets errors.Is match the ErrInsufficientStock sentinel.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Product is a stock-keeping unit identified by its name.
// The stock counter is guarded per product; Buy is an atomic check-and-decrement.
type Product struct {
	name  string
	price decimal.Decimal

	mu        sync.Mutex
	available int
}

// NewProduct validates and constructs a Product.
func NewProduct(name string, price decimal.Decimal, available int) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if available < 0 {
		return nil, ErrNegativeAmount
	}
	return &Product{name: name, price: price, available: available}, nil
}

func (p *Product) Name() string { return p.name }

func (p *Product) Price() decimal.Decimal { return p.price }

// Key is the identity used by carts and shipment product lists.
func (p *Product) Key() string { return p.name }

func (p *Product) String() string { return p.name }

// Equal compares products by name only; price and stock snapshots are ignored.
func (p *Product) Equal(other *Product) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.name == other.name
}

// Available returns the current stock level.
func (p *Product) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.available
}

// IsAvailable reports whether at least amount units are in stock.
func (p *Product) IsAvailable(amount int) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.available >= amount
}

// Buy deducts amount from stock, or fails without touching it.
func (p *Product) Buy(amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.available < amount {
		return &InsufficientStockError{Product: p.name, Requested: amount, Available: p.available}
	}
	p.available -= amount
	return nil
}

// Release returns previously bought units to stock.
func (p *Product) Release(amount int) {
	if amount <= 0 {
		return
	}
	p.mu.Lock()
	p.available += amount
	p.mu.Unlock()
}
