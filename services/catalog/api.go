package catalog

import (
	"context"

	"github.com/MarcGrol/storefront/services/cart"
)

//go:generate mockgen -source=api.go -package catalog -destination catalog_mock.go Catalog
type Catalog interface {
	ListProducts(c context.Context) ([]Product, error)
	GetProduct(c context.Context, productID cart.ProductID) (Product, error)
	ListCategories(c context.Context) ([]Category, error)
}
