package shop

import (
	"github.com/MarcGrol/storefront/services/cart"
	"github.com/MarcGrol/storefront/services/catalog"
	"github.com/MarcGrol/storefront/services/checkout"
)

type lineItemView struct {
	ProductID  cart.ProductID
	Name       string
	ImageRef   string
	Quantity   int
	UnitPrice  string
	TotalPrice string
}

type statusView struct {
	State  checkout.State
	Reason string `json:",omitempty"`
}

type cartView struct {
	Items         []lineItemView
	Total         string
	Count         int
	Status        statusView
	Authenticated bool   `json:"-"`
	Email         string `json:"-"`
	OrderID       string `json:",omitempty"`
}

type productListView struct {
	Products         []productView
	Categories       []catalog.Category
	SelectedCategory *int64
	CartCount        int
	Authenticated    bool
	Email            string
}

type productView struct {
	ID       cart.ProductID
	Name     string
	Price    string
	ImageURL string
	InStock  bool
}

type productDetailsView struct {
	Product       productView
	Description   string
	CartCount     int
	Authenticated bool
	Email         string
}

type authView struct {
	Email string
	Error string
}

func newCartView(snapshot cart.Snapshot, status checkout.Status) cartView {
	items := make([]lineItemView, 0, len(snapshot))
	for _, li := range snapshot {
		items = append(items, lineItemView{
			ProductID:  li.ProductID,
			Name:       li.Name,
			ImageRef:   li.ImageRef,
			Quantity:   li.Quantity,
			UnitPrice:  li.UnitPrice.StringFixed(2),
			TotalPrice: li.TotalPrice().StringFixed(2),
		})
	}
	return cartView{
		Items: items,
		Total: snapshot.Total().StringFixed(2),
		Count: snapshot.Count(),
		Status: statusView{
			State:  status.State,
			Reason: status.Reason,
		},
	}
}

func newProductListView(products []catalog.Product, categories []catalog.Category, selected *int64) productListView {
	views := make([]productView, 0, len(products))
	for _, p := range catalog.FilterByCategory(products, selected) {
		views = append(views, newProductView(p))
	}
	return productListView{
		Products:         views,
		Categories:       categories,
		SelectedCategory: selected,
	}
}

func (v productListView) IsSelected(categoryID int64) bool {
	return v.SelectedCategory != nil && *v.SelectedCategory == categoryID
}

func newProductView(p catalog.Product) productView {
	return productView{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price.StringFixed(2),
		ImageURL: p.Image(),
		InStock:  p.InStock,
	}
}

func newProductDetailsView(p catalog.Product) productDetailsView {
	return productDetailsView{
		Product:     newProductView(p),
		Description: p.Description,
	}
}
