package orderapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/myhttpclient"
	"github.com/MarcGrol/storefront/services/cart"
)

var (
	orderRequest = OrderRequest{
		Lines: []OrderLine{
			{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
			{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("5.5")},
		},
	}
)

func TestNewOrderRequest(t *testing.T) {
	// given
	c := cart.New()
	c.AddItem(cart.Product{ID: 1, Name: "Shirt", UnitPrice: decimal.RequireFromString("10.00")})
	c.AddItem(cart.Product{ID: 1, Name: "Shirt", UnitPrice: decimal.RequireFromString("10.00")})
	c.AddItem(cart.Product{ID: 2, Name: "Mug", UnitPrice: decimal.RequireFromString("5.00")})

	// when
	req := NewOrderRequest(c.Snapshot())

	// then
	assert.Len(t, req.Lines, 2)
	assert.Equal(t, cart.ProductID(1), req.Lines[0].ProductID)
	assert.Equal(t, 2, req.Lines[0].Quantity)
	assert.Equal(t, 3, req.ItemCount())
	assert.True(t, decimal.RequireFromString("25").Equal(req.Total()))
}

func TestSubmitOrder(t *testing.T) {
	c := context.TODO()

	t.Run("Success", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/orders", r.URL.Path)
			assert.Equal(t, "Bearer my_token", r.Header.Get("Authorization"))
			body, _ := io.ReadAll(r.Body)
			assert.JSONEq(t, `{"items":[{"ProductID":1,"Quantity":2,"Price":10},{"ProductID":2,"Quantity":1,"Price":5.5}]}`, string(body))

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"ID":42}`))
		}))
		defer server.Close()

		// when
		confirmation, err := NewClient(myhttpclient.New(time.Second), server.URL+"/").SubmitOrder(c, "my_token", orderRequest)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "42", confirmation.OrderID)
	})

	t.Run("Success without body", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		// when
		confirmation, err := NewClient(myhttpclient.New(time.Second), server.URL).SubmitOrder(c, "my_token", orderRequest)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "", confirmation.OrderID)
	})

	t.Run("Success with string order id", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"orderId":"ord-7"}`))
		}))
		defer server.Close()

		// when
		confirmation, err := NewClient(myhttpclient.New(time.Second), server.URL).SubmitOrder(c, "my_token", orderRequest)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "ord-7", confirmation.OrderID)
	})

	t.Run("Rejected with structured error", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"product 2 is out of stock"}`))
		}))
		defer server.Close()

		// when
		_, err := NewClient(myhttpclient.New(time.Second), server.URL).SubmitOrder(c, "my_token", orderRequest)

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "product 2 is out of stock")
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))
	})

	t.Run("Server error", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		// when
		_, err := NewClient(myhttpclient.New(time.Second), server.URL).SubmitOrder(c, "my_token", orderRequest)

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "http status 500")
		assert.Equal(t, http.StatusServiceUnavailable, myerrors.GetHTTPStatus(err))
	})

	t.Run("Unreachable", func(t *testing.T) {
		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		// when
		_, err := NewClient(myhttpclient.New(time.Second), server.URL).SubmitOrder(c, "my_token", orderRequest)

		// then
		assert.Error(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, myerrors.GetHTTPStatus(err))
	})
}
