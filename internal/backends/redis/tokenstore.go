package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
	"ws1uem/internal/ports"
	"ws1uem/internal/types"

	"github.com/redis/go-redis/v9"
)

const (
	fieldAccessToken = "access_token"
	fieldAcquiredAt  = "acquired_at"
	fieldTTL         = "ttl"
)

// TokenStore keeps OAuth tokens in redis hashes so several processes share one token per credential set.
// Entries expire with the token's TTL.
type TokenStore struct {
	cli    *redis.Client
	prefix string
}

var _ ports.TokenStore = &TokenStore{}

// NewTokenStore stores each token under prefix+key.
func NewTokenStore(cli *redis.Client, prefix string) *TokenStore {
	return &TokenStore{cli: cli, prefix: prefix}
}

func (s *TokenStore) Load(ctx context.Context, key string) (*types.CachedToken, error) {
	out := s.cli.HGetAll(ctx, s.tokenKey(key))
	if out.Err() != nil {
		if errors.Is(out.Err(), redis.Nil) {
			return nil, nil
		}
		return nil, out.Err()
	}
	m := out.Val()
	if len(m) == 0 {
		return nil, nil
	}
	acquiredAt, err := strconv.ParseInt(m[fieldAcquiredAt], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("token %s: invalid %s: %w", key, fieldAcquiredAt, err)
	}
	ttl, err := strconv.ParseInt(m[fieldTTL], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("token %s: invalid %s: %w", key, fieldTTL, err)
	}
	return &types.CachedToken{
		AccessToken: m[fieldAccessToken],
		AcquiredAt:  time.Unix(0, acquiredAt),
		TTL:         time.Duration(ttl) * time.Second,
	}, nil
}

func (s *TokenStore) Save(ctx context.Context, key string, token types.CachedToken) error {
	k := s.tokenKey(key)
	_, err := s.cli.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k,
			fieldAccessToken, token.AccessToken,
			fieldAcquiredAt, token.AcquiredAt.UnixNano(),
			fieldTTL, int64(token.TTL/time.Second),
		)
		if token.TTL > 0 {
			pipe.Expire(ctx, k, token.TTL)
		}
		return nil
	})
	return err
}

func (s *TokenStore) Clear(ctx context.Context, key string) error {
	return s.cli.Del(ctx, s.tokenKey(key)).Err()
}

// ClearAll drops every stored token.
func (s *TokenStore) ClearAll(ctx context.Context) error {
	out := s.cli.Keys(ctx, s.tokenKey("*"))
	if out.Err() != nil {
		return out.Err()
	}
	keys := out.Val()
	if len(keys) == 0 {
		return nil
	}
	return s.cli.Del(ctx, keys...).Err()
}

func (s *TokenStore) tokenKey(key string) string {
	return s.prefix + key
}
