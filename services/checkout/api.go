package checkout

import (
	"context"

	"github.com/MarcGrol/storefront/services/orderapi"
)

//go:generate mockgen -source=api.go -package checkout -destination checkout_mock.go Authenticator OrderSubmitter

// Authenticator is the read-only view of the session credentials.
type Authenticator interface {
	IsAuthenticated(c context.Context) bool
	Token(c context.Context) string
}

type OrderSubmitter interface {
	SubmitOrder(c context.Context, accessToken string, req orderapi.OrderRequest) (orderapi.OrderConfirmation, error)
}
