package shop

import (
	"time"

	"github.com/MarcGrol/storefront/lib/mylog"
	"github.com/MarcGrol/storefront/lib/mypublisher"
	"github.com/MarcGrol/storefront/lib/mypubsub"
	"github.com/MarcGrol/storefront/lib/mytime"
	"github.com/MarcGrol/storefront/lib/myuuid"
	"github.com/MarcGrol/storefront/services/auth"
	"github.com/MarcGrol/storefront/services/catalog"
	"github.com/MarcGrol/storefront/services/checkout"
)

type webService struct {
	catalog    catalog.Catalog
	auth       *auth.Service
	checkouts  *checkout.Service
	publisher  mypublisher.Publisher
	subscriber mypubsub.PubSub
	uuider     myuuid.UUIDer
	nower      mytime.Nower
	sessions   *sessionRegistry
	cookieName string
	publicURL  string
	logger     mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(cat catalog.Catalog, authService *auth.Service, checkouts *checkout.Service, pub mypublisher.Publisher, subscriber mypubsub.PubSub, uuider myuuid.UUIDer, nower mytime.Nower, cookieName string, sessionIdleTimeout time.Duration, publicURL string) *webService {
	return &webService{
		catalog:    cat,
		auth:       authService,
		checkouts:  checkouts,
		publisher:  pub,
		subscriber: subscriber,
		uuider:     uuider,
		nower:      nower,
		sessions:   newSessionRegistry(sessionIdleTimeout),
		cookieName: cookieName,
		publicURL:  publicURL,
		logger:     mylog.New("shop"),
	}
}
