package checkout

import (
	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/cart"
)

// Service holds what all sessions share. A Checkout is created per session.
type Service struct {
	orders    OrderSubmitter
	publisher mypublisher.Publisher
	uuider    myuuid.UUIDer
	metrics   *Metrics
	logger    mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(orders OrderSubmitter, publisher mypublisher.Publisher, uuider myuuid.UUIDer, metrics *Metrics) *Service {
	return &Service{
		orders:    orders,
		publisher: publisher,
		uuider:    uuider,
		metrics:   metrics,
		logger:    mylog.New("checkout"),
	}
}

func (s *Service) ForSession(sessionUID string, cart *cart.Cart, auth Authenticator) *Checkout {
	return &Checkout{
		status:     Status{State: StateIdle},
		sessionUID: sessionUID,
		cart:       cart,
		auth:       auth,
		service:    s,
	}
}
