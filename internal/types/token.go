package types

import "time"

// CachedToken is the OAuth access token held for a client.
// AcquiredAt is set when the token endpoint answered; TTL is how long the token is reused from then on.
type CachedToken struct {
	AccessToken string        `json:"access_token"`
	AcquiredAt  time.Time     `json:"acquired_at"`
	TTL         time.Duration `json:"ttl"`
}

// Valid reports whether the token can still be sent at time now.
func (t *CachedToken) Valid(now time.Time) bool {
	if t == nil || t.AccessToken == "" {
		return false
	}
	return now.Sub(t.AcquiredAt) < t.TTL
}
