package myvault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "storefront:credentials:"

type redisVault struct {
	client *redis.Client
	ttl    time.Duration
}

func newRedisVault(c context.Context, redisURL string, ttl time.Duration) (*redisVault, func(), error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	err = client.Ping(c).Err()
	if err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("error connecting to redis: %w", err)
	}

	return &redisVault{
			client: client,
			ttl:    ttl,
		}, func() {
			client.Close()
		}, nil
}

func (v *redisVault) Put(c context.Context, sessionUID string, value Token) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("error marshalling token: %w", err)
	}

	err = v.client.Set(c, keyPrefix+sessionUID, data, v.ttl).Err()
	if err != nil {
		return fmt.Errorf("error storing token of session %s: %w", sessionUID, err)
	}
	return nil
}

func (v *redisVault) Get(c context.Context, sessionUID string) (Token, bool, error) {
	data, err := v.client.Get(c, keyPrefix+sessionUID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Token{}, false, nil
		}
		return Token{}, false, fmt.Errorf("error fetching token of session %s: %w", sessionUID, err)
	}

	token := Token{}
	err = json.Unmarshal(data, &token)
	if err != nil {
		return Token{}, false, fmt.Errorf("error unmarshalling token of session %s: %w", sessionUID, err)
	}
	return token, true, nil
}

func (v *redisVault) Delete(c context.Context, sessionUID string) error {
	err := v.client.Del(c, keyPrefix+sessionUID).Err()
	if err != nil {
		return fmt.Errorf("error deleting token of session %s: %w", sessionUID, err)
	}
	return nil
}
