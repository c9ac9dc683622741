// Package cart is the visitor's shopping cart, persisted as a JSON array
// in a kv.Storage after every change.
package cart

import (
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/webark/webark/kv"
)

// Key is the storage key holding the cart.
const Key = "cart"

// Item is one cart line.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// Cart is safe for concurrent use.
type Cart struct {
	mu      sync.Mutex
	storage kv.Storage
	log     *zap.Logger
	items   []Item
}

// Option configures a Cart.
type Option func(*Cart)

// WithLogger sets the logger used when stored data is discarded.
func WithLogger(l *zap.Logger) Option {
	return func(c *Cart) { c.log = l }
}

// New loads the cart from storage. Data that does not decode is dropped,
// its key removed, and the cart starts empty.
func New(storage kv.Storage, opts ...Option) (*Cart, error) {
	c := &Cart{storage: storage, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	raw, found, err := storage.Get(Key)
	if err != nil {
		return nil, fmt.Errorf("cart: load: %w", err)
	}
	if !found || raw == "" {
		return c, nil
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.log.Warn("discarding malformed cart", zap.Error(err))
		if err := storage.Remove(Key); err != nil {
			return nil, fmt.Errorf("cart: remove malformed data: %w", err)
		}
		return c, nil
	}
	c.items = items
	return c, nil
}

// Add puts one more of item in the cart. An existing line with the same id
// gains one in quantity; otherwise a new line with quantity 1 is appended.
func (c *Cart) Add(item Item) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity++
			return c.persist()
		}
	}
	item.Quantity = 1
	c.items = append(c.items, item)
	return c.persist()
}

// Remove drops the line with id. Unknown ids are ignored.
func (c *Cart) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(id)
	return c.persist()
}

// SetQuantity sets the quantity of the line with id; n <= 0 removes it.
func (c *Cart) SetQuantity(id string, n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n <= 0 {
		c.remove(id)
		return c.persist()
	}
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Quantity = n
		}
	}
	return c.persist()
}

// Clear empties the cart.
func (c *Cart) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return c.persist()
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItems is the sum of quantities.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// TotalPrice is the sum of price times quantity.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0.0
	for _, it := range c.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

func (c *Cart) remove(id string) {
	kept := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

func (c *Cart) persist() error {
	items := c.items
	if items == nil {
		items = []Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("cart: encode: %w", err)
	}
	if err := c.storage.Set(Key, string(b)); err != nil {
		return fmt.Errorf("cart: save: %w", err)
	}
	return nil
}
