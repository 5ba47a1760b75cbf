package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// MaxQuantity caps the quantity of a single line item. Larger values are clamped.
const MaxQuantity = 9999

// Cart is the single source of truth for the line items of one session.
// Every line item has a quantity between 1 and MaxQuantity and a product occurs at most once.
type Cart struct {
	mu    sync.Mutex
	items []LineItem
}

func New() *Cart {
	return &Cart{
		items: []LineItem{},
	}
}

// AddItem increments the quantity of a product already present, or appends it with quantity 1.
// A line item already at MaxQuantity stays there.
func (c *Cart) AddItem(p Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.indexOf(p.ID); idx >= 0 {
		if c.items[idx].Quantity < MaxQuantity {
			c.items[idx].Quantity++
		}
		return
	}

	price := p.UnitPrice
	if price.IsNegative() {
		price = decimal.Zero
	}

	c.items = append(c.items, LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: price,
		ImageRef:  p.ImageRef,
		Quantity:  1,
	})
}

func (c *Cart) RemoveItem(productID ProductID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeAt(c.indexOf(productID))
}

// SetQuantity clamps the quantity to [0, MaxQuantity] and removes the item at zero.
// Products that are not in the cart are never inserted.
func (c *Cart) SetQuantity(productID ProductID, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(productID)
	if idx < 0 {
		return
	}

	if quantity <= 0 {
		c.removeAt(idx)
		return
	}
	c.items[idx].Quantity = min(quantity, MaxQuantity)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = []LineItem{}
}

func (c *Cart) Total() decimal.Decimal {
	return c.Snapshot().Total()
}

func (c *Cart) Count() int {
	return c.Snapshot().Count()
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items) == 0
}

func (c *Cart) Items() []LineItem {
	return c.Snapshot()
}

func (c *Cart) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make(Snapshot, len(c.items))
	copy(snapshot, c.items)
	return snapshot
}

func (c *Cart) indexOf(productID ProductID) int {
	for idx, li := range c.items {
		if li.ProductID == productID {
			return idx
		}
	}
	return -1
}

func (c *Cart) removeAt(idx int) {
	if idx < 0 {
		return
	}
	c.items = append(c.items[:idx], c.items[idx+1:]...)
}
