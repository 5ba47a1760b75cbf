package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttpclient"
	"github.com/MarcGrol/storefront/services/cart"
)

type client struct {
	sender  myhttpclient.HTTPSender
	baseURL string
}

func NewClient(sender myhttpclient.HTTPSender, baseURL string) Catalog {
	return &client{
		sender:  sender,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (cl *client) ListProducts(c context.Context) ([]Product, error) {
	products := []Product{}
	err := cl.get(c, "/products", &products)
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (cl *client) GetProduct(c context.Context, productID cart.ProductID) (Product, error) {
	product := Product{}
	err := cl.get(c, fmt.Sprintf("/products/%d", productID), &product)
	if err != nil {
		return Product{}, err
	}
	return product, nil
}

func (cl *client) ListCategories(c context.Context) ([]Category, error) {
	categories := []Category{}
	err := cl.get(c, "/categories", &categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (cl *client) get(c context.Context, path string, result any) error {
	httpStatus, body, err := cl.sender.Send(c, http.MethodGet, cl.baseURL+path, "", nil)
	if err != nil {
		return myerrors.NewUnavailableError(fmt.Errorf("catalog unreachable: %s", err))
	}

	if httpStatus < 200 || httpStatus >= 300 {
		return myerrors.FromHTTPStatus(httpStatus, fmt.Errorf("error fetching %s: http status %d", path, httpStatus))
	}

	err = json.Unmarshal(body, result)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error parsing response of %s: %s", path, err))
	}

	return nil
}
