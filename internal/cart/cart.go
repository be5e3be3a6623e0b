// Package cart holds a session's in-memory selection. It is never persisted on
// its own; its only durable trace is the order it turns into.
package cart

import (
	"sync"

	"github.com/angelmondragon/caffeineveins/internal/catalog"
	"github.com/shopspring/decimal"
)

// Item is one cart line. Product and SelectedSize are snapshots taken when
// the line was added, so later catalog edits do not reach into the cart.
type Item struct {
	Product      catalog.Product     `json:"product"`
	SelectedSize catalog.ProductSize `json:"selectedSize"`
	Quantity     int                 `json:"quantity"`
}

// LineTotal is price times quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.SelectedSize.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Clone returns a copy that shares no slices with i.
func (i Item) Clone() Item {
	out := i
	out.Product = i.Product.Clone()
	return out
}

// matches applies the line identity: product id plus size price. Two sizes of
// one product with equal prices therefore share a line.
func (i Item) matches(productID string, price decimal.Decimal) bool {
	return i.Product.ID == productID && i.SelectedSize.Price.Equal(price)
}

// Cart is safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func New() *Cart {
	return &Cart{}
}

// Add merges into an existing line for the same (product id, price) or
// appends a new line with quantity 1. It returns the line's new quantity.
func (c *Cart) Add(product catalog.Product, size catalog.ProductSize) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].matches(product.ID, size.Price) {
			c.items[i].Quantity++
			return c.items[i].Quantity
		}
	}
	c.items = append(c.items, Item{
		Product:      product.Clone(),
		SelectedSize: size,
		Quantity:     1,
	})
	return 1
}

// Remove deletes every line matching the key and reports how many went.
func (c *Cart) Remove(productID string, price decimal.Decimal) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removeLocked(productID, price)
}

func (c *Cart) removeLocked(productID string, price decimal.Decimal) int {
	kept := c.items[:0]
	removed := 0
	for _, item := range c.items {
		if item.matches(productID, price) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	// drop references held past the new length
	for i := len(kept); i < len(c.items); i++ {
		c.items[i] = Item{}
	}
	c.items = kept
	return removed
}

// SetQuantity replaces the quantity of matching lines; quantity <= 0 removes them.
func (c *Cart) SetQuantity(productID string, price decimal.Decimal, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(productID, price)
		return
	}
	for i := range c.items {
		if c.items[i].matches(productID, price) {
			c.items[i].Quantity = quantity
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Total sums price times quantity over the current lines.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Total(c.items)
}

// Items returns a deep copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneItems(c.items)
}

// Len is the number of lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Count is the number of units across all lines.
func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Checkout hands a copy of the lines to fn while holding the cart, and empties
// the cart only if fn succeeds. Nobody observes the cart between fn recording
// the lines elsewhere and the clear.
func (c *Cart) Checkout(fn func(items []Item) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := fn(cloneItems(c.items)); err != nil {
		return err
	}
	c.items = nil
	return nil
}

// Total sums the line totals of items.
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func cloneItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}
