package myconfig

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/multierr"
)

const EnvPrefix = "STOREFRONT"

type Config struct {
	// Port is read without prefix because the hosting platform sets it
	Port string `envconfig:"PORT" default:"8080"`

	GoogleCloudProject string `envconfig:"GOOGLE_CLOUD_PROJECT"`

	// APIBaseURL points to the remote catalog/auth/order service
	APIBaseURL  string        `split_words:"true" default:"http://localhost:8081"`
	HTTPTimeout time.Duration `split_words:"true" default:"5s"`

	// PublicURL is where pubsub pushes events to
	PublicURL string `split_words:"true" default:"http://localhost:8080"`

	SessionCookieName string        `split_words:"true" default:"storefront_session"`
	CredentialTTL     time.Duration `split_words:"true" default:"24h"`

	// SessionIdleTimeout drops carts of browsers that have not been seen for this long
	SessionIdleTimeout time.Duration `split_words:"true" default:"2h"`

	// RedisURL selects the redis credential vault when set
	RedisURL string `split_words:"true"`
}

func Load() (Config, error) {
	cfg := Config{}
	err := envconfig.Process(EnvPrefix, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("error parsing config: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var err error

	if c.Port == "" {
		err = multierr.Append(err, fmt.Errorf("port is required"))
	}

	u, parseErr := url.Parse(c.APIBaseURL)
	if parseErr != nil || u.Scheme == "" || u.Host == "" {
		err = multierr.Append(err, fmt.Errorf("api base url %q is not an absolute url", c.APIBaseURL))
	}

	u, parseErr = url.Parse(c.PublicURL)
	if parseErr != nil || u.Scheme == "" || u.Host == "" {
		err = multierr.Append(err, fmt.Errorf("public url %q is not an absolute url", c.PublicURL))
	}

	if c.HTTPTimeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("http timeout must be positive"))
	}

	if c.SessionCookieName == "" {
		err = multierr.Append(err, fmt.Errorf("session cookie name is required"))
	}

	if c.SessionIdleTimeout <= 0 {
		err = multierr.Append(err, fmt.Errorf("session idle timeout must be positive"))
	}

	if c.RedisURL != "" && c.CredentialTTL <= 0 {
		err = multierr.Append(err, fmt.Errorf("credential ttl must be positive when using redis"))
	}

	return err
}
