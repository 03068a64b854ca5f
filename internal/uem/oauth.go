package uem

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"
	"ws1uem/internal/ports"
	"ws1uem/internal/types"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// OAuthClientCredentialsStrategy authenticates with a bearer token from an OAuth2 client-credentials grant.
// The token is cached in a ports.TokenStore and refreshed lazily, inline, by the first call after it expired.
type OAuthClientCredentialsStrategy struct {
	tenantCode string
	ttl        time.Duration
	key        string
	grant      *clientcredentials.Config
	store      ports.TokenStore
	httpClient *http.Client
	log        log.FieldLogger

	// mu serializes check → acquire → store so concurrent callers never fetch twice.
	mu sync.Mutex
}

var _ AuthStrategy = &OAuthClientCredentialsStrategy{}

func NewOAuthClientCredentialsStrategy(
	creds types.OAuthCredentials,
	store ports.TokenStore,
	httpClient *http.Client,
	logger log.FieldLogger,
) *OAuthClientCredentialsStrategy {
	tokenURL := normalizeHost(creds.AuthURL)
	return &OAuthClientCredentialsStrategy{
		tenantCode: creds.TenantCode,
		ttl:        creds.TTL(),
		key:        ComputeKey(tokenURL + "|" + creds.ClientID + "|" + creds.TenantCode),
		grant: &clientcredentials.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			TokenURL:     tokenURL,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		store:      store,
		httpClient: httpClient,
		log:        logger,
	}
}

func (o *OAuthClientCredentialsStrategy) Headers(ctx context.Context, caller http.Header) (http.Header, error) {
	token, err := o.Token(ctx)
	if err != nil {
		return nil, err
	}
	h := cloneHeader(caller)
	h.Del(contentTypeHdrName)
	h.Set(authorizationHdrName, "Bearer "+token)
	h.Set(types.TenantCodeHdrName, o.tenantCode)
	h.Set(dateHdrName, timeNow().UTC().Format(http.TimeFormat))
	setDefaultAccept(h)
	return h, nil
}

// Token returns a valid access token, acquiring and storing a new one when the cached one is absent or expired.
func (o *OAuthClientCredentialsStrategy) Token(ctx context.Context) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	cached, err := o.store.Load(ctx, o.key)
	if err != nil {
		return "", types.Err(types.ErrTokenStoreAccess, err, "load token %s", o.key)
	}
	if cached.Valid(timeNow()) {
		return cached.AccessToken, nil
	}

	o.log.WithField("tokenURL", o.grant.TokenURL).Debug("Acquiring oauth access token")
	accessToken, err := o.acquire(ctx)
	if err != nil {
		o.log.WithError(err).Error("OAuth token acquisition failed")
		return "", err
	}
	next := types.CachedToken{
		AccessToken: accessToken,
		AcquiredAt:  timeNow(),
		TTL:         o.ttl,
	}
	if err := o.store.Save(ctx, o.key, next); err != nil {
		return "", types.Err(types.ErrTokenStoreAccess, err, "save token %s", o.key)
	}
	return accessToken, nil
}

// Invalidate drops the cached token; the next call acquires a new one.
func (o *OAuthClientCredentialsStrategy) Invalidate(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.store.Clear(ctx, o.key); err != nil {
		return types.Err(types.ErrTokenStoreAccess, err, "clear token %s", o.key)
	}
	return nil
}

// acquire posts the client-credentials form to the token URL through the client's own http.Client.
func (o *OAuthClientCredentialsStrategy) acquire(ctx context.Context) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, o.httpClient)
	token, err := o.grant.Token(ctx)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) {
			if apiErr := apiErrorFromBody(re.Response, re.Body); apiErr != nil {
				return "", types.Err(types.ErrTokenAcquisition, apiErr, "")
			}
		}
		return "", types.Err(types.ErrTokenAcquisition, err, "")
	}
	return token.AccessToken, nil
}

// apiErrorFromBody returns the APIError carried by a failed token response, nil when the body has none.
func apiErrorFromBody(resp *http.Response, body []byte) *APIError {
	if resp == nil || len(body) == 0 {
		return nil
	}
	replay := &http.Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       io.NopCloser(bytes.NewReader(body)),
	}
	_, err := Normalize(replay)
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
