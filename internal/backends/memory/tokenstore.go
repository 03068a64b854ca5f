package memory

import (
	"context"
	"sync"
	"ws1uem/internal/types"
)

// TokenStore keeps OAuth tokens in process memory. Its content lives as long as the store.
// Expiry is decided by the caller from CachedToken.Valid; the store never drops entries on its own.
type TokenStore struct {
	mu   sync.RWMutex
	data map[string]types.CachedToken
}

func NewTokenStore() *TokenStore {
	return &TokenStore{data: make(map[string]types.CachedToken)}
}

// Load returns a copy of the token stored under key, or nil when there is none.
func (s *TokenStore) Load(_ context.Context, key string) (*types.CachedToken, error) {
	s.mu.RLock()
	t, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (s *TokenStore) Save(_ context.Context, key string, token types.CachedToken) error {
	s.mu.Lock()
	s.data[key] = token
	s.mu.Unlock()
	return nil
}

func (s *TokenStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}
