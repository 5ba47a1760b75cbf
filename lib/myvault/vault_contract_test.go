package myvault

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/storefront/lib/mystore"
	"github.com/MarcGrol/storefront/lib/mytime"
)

func TestInMemoryVault(t *testing.T) {
	VaultContract{
		vault: func(t *testing.T) Vault {
			store, _, err := mystore.NewInMemoryStore[Token](context.Background())
			assert.NoError(t, err)
			return store
		},
	}.Test(t)
}

func TestRedisVault(t *testing.T) {
	redisURL := os.Getenv("STOREFRONT_TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("STOREFRONT_TEST_REDIS_URL not set")
	}

	VaultContract{
		vault: func(t *testing.T) Vault {
			vault, cleanup, err := newRedisVault(context.Background(), redisURL, time.Minute)
			assert.NoError(t, err)
			t.Cleanup(cleanup)
			return vault
		},
	}.Test(t)
}

// VaultContract is the behaviour every Vault implementation must show.
type VaultContract struct {
	vault func(t *testing.T) Vault
}

func (vc VaultContract) Test(t *testing.T) {
	t.Run("can put, get and delete a token", func(t *testing.T) {
		var (
			sut   = vc.vault(t)
			ctx   = context.Background()
			token = Token{SessionUID: "contract-1", Email: "marc@example.com", AccessToken: "abc", CreatedAt: mytime.ExampleTime}
		)

		assert.NoError(t, sut.Put(ctx, token.SessionUID, token))

		got, found, err := sut.Get(ctx, token.SessionUID)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, token, got)

		assert.NoError(t, sut.Delete(ctx, token.SessionUID))

		_, found, err = sut.Get(ctx, token.SessionUID)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("can recognize when a token does not exist", func(t *testing.T) {
		var (
			sut = vc.vault(t)
			ctx = context.Background()
		)

		_, found, err := sut.Get(ctx, "contract-unknown")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("deleting an unknown token is fine", func(t *testing.T) {
		var (
			sut = vc.vault(t)
			ctx = context.Background()
		)

		assert.NoError(t, sut.Delete(ctx, "contract-unknown"))
	})

	t.Run("put overwrites", func(t *testing.T) {
		var (
			sut = vc.vault(t)
			ctx = context.Background()
		)

		assert.NoError(t, sut.Put(ctx, "contract-2", Token{SessionUID: "contract-2", AccessToken: "old"}))
		assert.NoError(t, sut.Put(ctx, "contract-2", Token{SessionUID: "contract-2", AccessToken: "new"}))

		got, found, err := sut.Get(ctx, "contract-2")
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "new", got.AccessToken)

		assert.NoError(t, sut.Delete(ctx, "contract-2"))
	})
}
