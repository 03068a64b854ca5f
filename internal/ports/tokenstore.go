package ports

import (
	"context"
	"ws1uem/internal/types"
)

// TokenStore holds the cached OAuth token of a client, keyed by a stable hash of its credentials.
// The default store lives in process memory; shared stores let several processes reuse one token.
type TokenStore interface {
	// Load returns the cached token for key.
	// If no token exists, (nil,nil) MUST be returned.
	Load(ctx context.Context, key string) (*types.CachedToken, error)

	// Save replaces the cached token for key.
	Save(ctx context.Context, key string, token types.CachedToken) error

	// Clear removes the cached token for key. Clearing an absent key is not an error.
	Clear(ctx context.Context, key string) error
}
