package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/MarcGrol/storefront/services/cart"
)

const PlaceholderImageURL = "https://images.unsplash.com/photo-1523275335684-37898b6baf30?auto=format&fit=crop&q=80&w=1000"

type Product struct {
	ID          cart.ProductID
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	CategoryID  int64
	InStock     bool
}

type Category struct {
	ID   int64
	Name string
}

func (p Product) Image() string {
	if p.ImageURL == "" {
		return PlaceholderImageURL
	}
	return p.ImageURL
}

// ToCartProduct captures the data the cart keeps for the rest of the session.
func (p Product) ToCartProduct() cart.Product {
	return cart.Product{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		ImageRef:  p.Image(),
	}
}

// FilterByCategory keeps all products when categoryID is nil.
func FilterByCategory(products []Product, categoryID *int64) []Product {
	if categoryID == nil {
		return products
	}
	filtered := []Product{}
	for _, p := range products {
		if p.CategoryID == *categoryID {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
