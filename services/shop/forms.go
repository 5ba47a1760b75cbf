package shop

import (
	"net/http"
	"strconv"

	formcodec "github.com/go-playground/form/v4"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/services/cart"
)

var (
	formDecoder = formcodec.NewDecoder()
	validate    = validator.New(validator.WithRequiredStructEnabled())
)

type addToCartForm struct {
	ProductID int64 `form:"productId" validate:"required,gt=0"`
}

// Quantity may be zero or negative: the cart clamps it.
type setQuantityForm struct {
	Quantity *int `form:"quantity" validate:"required"`
}

func decodeForm(r *http.Request, form any) error {
	err := r.ParseForm()
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	err = formDecoder.Decode(form, r.PostForm)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	err = validate.Struct(form)
	if err != nil {
		return myerrors.NewInvalidInputError(err)
	}

	return nil
}

func productIDFromPath(r *http.Request) (cart.ProductID, error) {
	raw := mux.Vars(r)["productID"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, myerrors.NewInvalidInputErrorf("invalid product id %q", raw)
	}
	return cart.ProductID(id), nil
}

func categoryFromQuery(r *http.Request) (*int64, error) {
	raw := r.URL.Query().Get("category")
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, myerrors.NewInvalidInputErrorf("invalid category %q", raw)
	}
	return &id, nil
}
