package myhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/storefront/lib/myerrors"
	"github.com/MarcGrol/storefront/lib/mylog"
)

func TestResponseWriter(t *testing.T) {
	c := context.TODO()
	sut := NewWriter(mylog.New("myhttp"))

	t.Run("Error", func(t *testing.T) {
		response := httptest.NewRecorder()

		sut.WriteError(c, response, 7, myerrors.NewNotFoundError(fmt.Errorf("product 12 not found")))

		assert.Equal(t, http.StatusNotFound, response.Code)
		assert.Equal(t, "application/json", response.Header().Get("Content-Type"))
		resp := ErrorResponse{}
		err := json.NewDecoder(response.Body).Decode(&resp)
		assert.NoError(t, err)
		assert.Equal(t, 7, resp.ErrorCode)
		assert.Equal(t, "status: 404, err: product 12 not found", resp.Message)
	})

	t.Run("Success", func(t *testing.T) {
		response := httptest.NewRecorder()

		sut.Write(c, response, http.StatusOK, SuccessResponse{Message: "ok"})

		assert.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `{"Message":"ok"}`, response.Body.String())
	})

	t.Run("Redirect after post", func(t *testing.T) {
		request, err := http.NewRequest(http.MethodPost, "/cart/clear", nil)
		assert.NoError(t, err)
		request.Host = "localhost:8888"
		response := httptest.NewRecorder()

		RedirectAfterPost(response, request, "/cart")

		assert.Equal(t, http.StatusSeeOther, response.Code)
		assert.Equal(t, "http://localhost:8888/cart", response.Header().Get("Location"))
	})
}
