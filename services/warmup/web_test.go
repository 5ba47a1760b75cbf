package warmup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/storefront/lib/myvault"
)

func TestWarmup(t *testing.T) {
	t.Run("Vault reachable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		vault := myvault.NewMockVault(ctrl)
		vault.EXPECT().Get(gomock.Any(), probeSessionUID).Return(myvault.Token{}, false, nil)
		router := mux.NewRouter()
		NewService(vault).RegisterEndpoints(context.TODO(), router)

		// when
		request, err := http.NewRequest(http.MethodGet, "/_ah/warmup", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
	})

	t.Run("Vault unreachable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// given
		vault := myvault.NewMockVault(ctrl)
		vault.EXPECT().Get(gomock.Any(), probeSessionUID).Return(myvault.Token{}, false, fmt.Errorf("connection refused"))
		router := mux.NewRouter()
		NewService(vault).RegisterEndpoints(context.TODO(), router)

		// when
		request, err := http.NewRequest(http.MethodGet, "/_ah/warmup", nil)
		assert.NoError(t, err)
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusServiceUnavailable, response.Code)
	})
}
