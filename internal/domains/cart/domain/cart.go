package domain

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	catalog "github.com/Apurer/go-gin-eshop/internal/domains/catalog/domain"
)

var ErrNilProduct = errors.New("product is required")

// Line is a single product reservation inside a cart.
type Line struct {
	Product  *catalog.Product
	Quantity int
}

// Cart accumulates product reservations keyed by product name.
// Lines keep insertion order so submissions are deterministic.
type Cart struct {
	mu    sync.Mutex
	lines map[string]*Line
	order []string
}

func NewCart() *Cart {
	return &Cart{lines: map[string]*Line{}}
}

// AddProduct reserves amount units of product. Availability is checked against the
// product's current stock, not against what other carts already reserved.
func (c *Cart) AddProduct(product *catalog.Product, amount int) error {
	if product == nil {
		return ErrNilProduct
	}
	if amount <= 0 {
		return catalog.ErrInvalidAmount
	}
	if !product.IsAvailable(amount) {
		return &catalog.InsufficientStockError{Product: product.Name(), Requested: amount, Available: product.Available()}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if line, ok := c.lines[product.Key()]; ok {
		line.Quantity += amount
		return nil
	}
	c.lines[product.Key()] = &Line{Product: product, Quantity: amount}
	c.order = append(c.order, product.Key())
	return nil
}

// RemoveProduct drops the product line; absent products are ignored.
func (c *Cart) RemoveProduct(product *catalog.Product) {
	if product == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(product.Key())
}

func (c *Cart) ContainsProduct(product *catalog.Product) bool {
	if product == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.lines[product.Key()]
	return ok
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// Quantity returns the reserved quantity for product, zero when absent.
func (c *Cart) Quantity(product *catalog.Product) int {
	if product == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if line, ok := c.lines[product.Key()]; ok {
		return line.Quantity
	}
	return 0
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// CalculateTotal sums price x quantity over every line.
func (c *Cart) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines() {
		total = total.Add(line.Product.Price().Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Reserve buys every line. When any purchase fails, units already bought in this
// call are released and the cart is left as it was.
func (c *Cart) Reserve() (*Reservation, error) {
	c.mu.Lock()
	lines := c.snapshotLocked()
	c.mu.Unlock()

	bought := make([]Line, 0, len(lines))
	for _, line := range lines {
		if err := line.Product.Buy(line.Quantity); err != nil {
			for _, done := range bought {
				done.Product.Release(done.Quantity)
			}
			return nil, err
		}
		bought = append(bought, line)
	}
	return &Reservation{cart: c, lines: bought}, nil
}

// SubmitCartOrder deducts stock for every line, drains the cart and returns
// the product identifiers in iteration order.
func (c *Cart) SubmitCartOrder() ([]string, error) {
	reservation, err := c.Reserve()
	if err != nil {
		return nil, err
	}
	return reservation.Commit(), nil
}

func (c *Cart) snapshotLocked() []Line {
	lines := make([]Line, 0, len(c.order))
	for _, key := range c.order {
		lines = append(lines, *c.lines[key])
	}
	return lines
}

func (c *Cart) removeLocked(key string) {
	if _, ok := c.lines[key]; !ok {
		return
	}
	delete(c.lines, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Reservation holds stock debited by Reserve until it is committed or released.
type Reservation struct {
	cart  *Cart
	lines []Line
	done  bool
}

// ProductIDs lists the reserved product identifiers in cart order.
func (r *Reservation) ProductIDs() []string {
	ids := make([]string, 0, len(r.lines))
	for _, line := range r.lines {
		ids = append(ids, line.Product.String())
	}
	return ids
}

// Commit drains the reserved units from the cart in one step. Units added to a line
// after Reserve were never bought and stay in the cart.
func (r *Reservation) Commit() []string {
	ids := r.ProductIDs()
	if r.done {
		return ids
	}
	r.done = true
	r.cart.mu.Lock()
	defer r.cart.mu.Unlock()
	for _, reserved := range r.lines {
		key := reserved.Product.Key()
		live, ok := r.cart.lines[key]
		if !ok {
			continue
		}
		live.Quantity -= reserved.Quantity
		if live.Quantity <= 0 {
			r.cart.removeLocked(key)
		}
	}
	return ids
}

// Release gives the reserved units back to stock and keeps the cart untouched.
func (r *Reservation) Release() {
	if r.done {
		return
	}
	r.done = true
	for _, line := range r.lines {
		line.Product.Release(line.Quantity)
	}
}
