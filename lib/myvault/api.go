package myvault

import (
	"context"
	"time"

	"github.com/MarcGrol/storefront/lib/myconfig"
	"github.com/MarcGrol/storefront/lib/mystore"
)

// Token is the credential of a storefront session, as handed out by the remote auth service.
type Token struct {
	SessionUID  string
	Email       string
	AccessToken string `datastore:",noindex"`
	CreatedAt   time.Time
}

//go:generate mockgen -source=api.go -package myvault -destination vault_mock.go Vault
type Vault interface {
	Put(c context.Context, sessionUID string, value Token) error
	Get(c context.Context, sessionUID string) (Token, bool, error)
	Delete(c context.Context, sessionUID string) error
}

// New selects redis when configured and the generic store otherwise.
func New(c context.Context, cfg myconfig.Config) (Vault, func(), error) {
	if cfg.RedisURL != "" {
		return newRedisVault(c, cfg.RedisURL, cfg.CredentialTTL)
	}
	return mystore.New[Token](c)
}
