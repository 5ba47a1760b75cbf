package cart

import (
	"github.com/shopspring/decimal"
)

type ProductID int64

// Product is what the cart needs to know about a product at the moment it is added.
type Product struct {
	ID        ProductID
	Name      string
	UnitPrice decimal.Decimal
	ImageRef  string
}

// LineItem carries the product data as captured when the product was first added.
// Price and name are never refreshed afterwards.
type LineItem struct {
	ProductID ProductID
	Name      string
	UnitPrice decimal.Decimal
	ImageRef  string
	Quantity  int
}

func (li LineItem) TotalPrice() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Snapshot is a copy of the cart contents in insertion order. Changing it does not affect the cart.
type Snapshot []LineItem

func (s Snapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range s {
		total = total.Add(li.TotalPrice())
	}
	return total
}

func (s Snapshot) Count() int {
	count := 0
	for _, li := range s {
		count += li.Quantity
	}
	return count
}
