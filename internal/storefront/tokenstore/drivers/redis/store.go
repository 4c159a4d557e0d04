// Package redis keeps the token in redis, for setups where several
// storefront processes share one login.
package redis

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/storefront/internal/storefront/tokenstore"
	goredis "github.com/redis/go-redis/v9"
)

var _ tokenstore.Store = (*Store)(nil)

// KeyPrefix namespaces the slot inside a shared redis.
const KeyPrefix = "storefront:"

type Store struct {
	client *goredis.Client
	key    string
}

// New wraps an existing client. The store owns it from here on and closes
// it in Close.
func New(client *goredis.Client, key string) *Store {
	if key == "" {
		key = tokenstore.DefaultKey
	}
	return &Store{client: client, key: KeyPrefix + key}
}

// Open connects to addr and checks the connection.
func Open(ctx context.Context, addr, key string) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return New(client, key), nil
}

func (s *Store) Get(ctx context.Context) (string, bool, error) {
	token, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return token, true, nil
}

// Set stores the token without expiry; the server decides when it is stale.
func (s *Store) Set(ctx context.Context, token string) error {
	return s.client.Set(ctx, s.key, token, 0).Err()
}

func (s *Store) Delete(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

func (s *Store) Close() error { return s.client.Close() }
