package types

import (
	"fmt"
	"strings"
	"time"
)

// ClientConfig is the connection configuration of one API client. It is treated as immutable once the client
// has been constructed.
// Host is the UEM API host, with or without scheme (e.g. "as1506.awmdm.com").
// Exactly one of Basic and OAuth must be set; it selects the authentication scheme of the client.
type ClientConfig struct {
	Host  string            `json:"host" yaml:"host"`
	Basic *BasicCredentials `json:"basic,omitempty" yaml:"basic,omitempty"`
	OAuth *OAuthCredentials `json:"oauth,omitempty" yaml:"oauth,omitempty"`
}

// BasicCredentials authenticate with HTTP Basic plus the tenant API key sent in `aw-tenant-code`.
type BasicCredentials struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	APIKey   string `json:"api_key" yaml:"api_key"`
}

// OAuthCredentials authenticate with an OAuth2 client-credentials grant against AuthURL.
// TenantCode is still sent in `aw-tenant-code` on every call.
// TokenTTL is how long an acquired token is reused; 0 means DefaultTokenTTL.
type OAuthCredentials struct {
	AuthURL      string        `json:"auth_url" yaml:"auth_url"`
	ClientID     string        `json:"client_id" yaml:"client_id"`
	ClientSecret string        `json:"client_secret" yaml:"client_secret"`
	TenantCode   string        `json:"tenant_code" yaml:"tenant_code"`
	TokenTTL     time.Duration `json:"token_ttl,omitempty" yaml:"token_ttl,omitempty"`
}

const (
	DefaultTokenTTL = 3600 * time.Second
	// MinTokenTTL is the shortest lifetime the token stores can keep; they persist it in whole seconds.
	MinTokenTTL = time.Second

	// TokenPathSuffix is the path every OAuth token URL must end with.
	TokenPathSuffix = "connect/token"

	TenantCodeHdrName = "aw-tenant-code"
)

func (c ClientConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Basic == nil && c.OAuth == nil {
		return fmt.Errorf("one of basic or oauth credentials is required")
	}
	if c.Basic != nil && c.OAuth != nil {
		return fmt.Errorf("basic and oauth credentials are mutually exclusive")
	}
	if c.Basic != nil {
		return c.Basic.Validate()
	}
	return c.OAuth.Validate()
}

func (b BasicCredentials) Validate() error {
	if b.Username == "" {
		return fmt.Errorf("basic.username is required")
	}
	if b.APIKey == "" {
		return fmt.Errorf("basic.api_key is required")
	}
	return nil
}

func (o OAuthCredentials) Validate() error {
	if o.AuthURL == "" {
		return fmt.Errorf("oauth.auth_url is required")
	}
	if !strings.HasSuffix(strings.TrimSuffix(o.AuthURL, "/"), TokenPathSuffix) {
		return fmt.Errorf("oauth.auth_url must end with %q, got %q", TokenPathSuffix, o.AuthURL)
	}
	if o.ClientID == "" {
		return fmt.Errorf("oauth.client_id is required")
	}
	if o.ClientSecret == "" {
		return fmt.Errorf("oauth.client_secret is required")
	}
	if o.TenantCode == "" {
		return fmt.Errorf("oauth.tenant_code is required")
	}
	if o.TokenTTL != 0 && o.TokenTTL < MinTokenTTL {
		return fmt.Errorf("oauth.token_ttl must be at least %s, or 0 for the default, got %s", MinTokenTTL, o.TokenTTL)
	}
	return nil
}

// TTL returns the configured token lifetime, falling back to DefaultTokenTTL.
func (o OAuthCredentials) TTL() time.Duration {
	if o.TokenTTL == 0 {
		return DefaultTokenTTL
	}
	return o.TokenTTL
}
