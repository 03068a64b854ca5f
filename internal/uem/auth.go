package uem

import (
	"context"
	"encoding/base64"
	"net/http"
	"ws1uem/internal/types"
)

const (
	authorizationHdrName = "Authorization"
	acceptHdrName        = "Accept"
	contentTypeHdrName   = "Content-Type"
	dateHdrName          = "Date"

	mimeJSON = "application/json"
)

// AuthStrategy builds the authenticated header set of a call.
// Headers returns the caller's headers plus the fields the scheme enforces; enforced fields always win.
type AuthStrategy interface {
	Headers(ctx context.Context, caller http.Header) (http.Header, error)
}

// BasicAuthStrategy sends HTTP Basic credentials and the tenant API key.
type BasicAuthStrategy struct {
	username string
	password string
	apiKey   string
}

var _ AuthStrategy = &BasicAuthStrategy{}

func NewBasicAuthStrategy(creds types.BasicCredentials) *BasicAuthStrategy {
	return &BasicAuthStrategy{
		username: creds.Username,
		password: creds.Password,
		apiKey:   creds.APIKey,
	}
}

func (b *BasicAuthStrategy) Headers(_ context.Context, caller http.Header) (http.Header, error) {
	h := cloneHeader(caller)
	auth := base64.StdEncoding.EncodeToString([]byte(b.username + ":" + b.password))
	h.Set(authorizationHdrName, "Basic "+auth)
	h.Set(types.TenantCodeHdrName, b.apiKey)
	setDefaultAccept(h)
	return h, nil
}

func cloneHeader(h http.Header) http.Header {
	if h == nil {
		return http.Header{}
	}
	return h.Clone()
}

// setDefaultAccept asks for JSON unless the caller picked a representation (e.g. application/json;version=2).
func setDefaultAccept(h http.Header) {
	if h.Get(acceptHdrName) == "" {
		h.Set(acceptHdrName, mimeJSON)
	}
}
