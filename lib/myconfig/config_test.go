package myconfig

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/multierr"
)

func TestConfig(t *testing.T) {

	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, "http://localhost:8081", cfg.APIBaseURL)
		assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, "storefront_session", cfg.SessionCookieName)
		assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
		assert.Equal(t, 2*time.Hour, cfg.SessionIdleTimeout)
		assert.Equal(t, "", cfg.RedisURL)
	})

	t.Run("From environment", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("STOREFRONT_API_BASE_URL", "https://api.example.com")
		t.Setenv("STOREFRONT_HTTP_TIMEOUT", "2s")
		t.Setenv("STOREFRONT_REDIS_URL", "redis://localhost:6379/0")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
		assert.Equal(t, 2*time.Second, cfg.HTTPTimeout)
		assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	})

	t.Run("Invalid collects all problems", func(t *testing.T) {
		cfg := Config{
			Port:               "",
			APIBaseURL:         "not-a-url",
			HTTPTimeout:        0,
			PublicURL:          "http://localhost:8080",
			SessionCookieName:  "session",
			SessionIdleTimeout: 0,
		}

		err := cfg.Validate()
		assert.Error(t, err)
		assert.Len(t, multierr.Errors(err), 4)
	})
}
