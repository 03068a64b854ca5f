// Package uem is the HTTP client of the WorkspaceONE UEM REST API.
//
// A Client owns the connection configuration, authenticates every call through an AuthStrategy
// (HTTP Basic + tenant code, or OAuth2 client credentials), dispatches one of five HTTP methods
// against https://{host}/api/[v{version}/]{module}/{path} and normalizes the response:
// JSON documents are decoded, API-reported errors become *APIError, and any other response
// yields its status code.
package uem

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"ws1uem/internal/backends/memory"
	"ws1uem/internal/ports"
	"ws1uem/internal/types"

	"github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTimeout = 30 * time.Second

	// getForcesJSONContentType makes GET send Content-Type: application/json while the other verbs
	// only send one when the caller or the body sets it. Kept for compatibility with existing integrations.
	getForcesJSONContentType = true
)

// Request describes one generic API call.
// Version 0 addresses the unversioned API. Data is sent as-is when set; otherwise JSON, when set, is encoded.
// Header fields set by the caller are kept unless the authentication scheme enforces them.
// Timeout 0 means the client's default, DefaultTimeout unless WithTimeout set another.
type Request struct {
	Module  string
	Path    string
	Version int
	Params  url.Values
	Data    []byte
	JSON    any
	Header  http.Header
	Timeout time.Duration
}

// Client talks to one UEM environment with one authentication scheme. It is safe for concurrent use.
type Client struct {
	host    string
	auth    AuthStrategy
	http    *http.Client
	log     log.FieldLogger
	timeout time.Duration
}

type options struct {
	httpClient *http.Client
	logger     log.FieldLogger
	tokenStore ports.TokenStore
	timeout    time.Duration
}

// Option customizes a Client at construction.
type Option func(*options)

// WithHTTPClient sends all calls, token requests included, through c.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger routes the client's logs to l. Without it the client logs warnings and errors to a private logger.
func WithLogger(l log.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

// WithTokenStore caches OAuth tokens in s instead of process memory. Ignored for Basic auth.
func WithTokenStore(s ports.TokenStore) Option {
	return func(o *options) { o.tokenStore = s }
}

// WithTimeout bounds every call that does not set its own Request.Timeout. Values <= 0 keep DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// New validates cfg and builds a client using the authentication scheme it configures.
func New(cfg types.ClientConfig, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, types.Err(types.ErrInvalidConfig, err, "")
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{}
	}
	if o.timeout <= 0 {
		o.timeout = DefaultTimeout
	}
	if o.logger == nil {
		l := log.New()
		l.SetLevel(log.WarnLevel)
		o.logger = l
	}

	var auth AuthStrategy
	if cfg.Basic != nil {
		o.logger.Debug("Using basic authentication")
		auth = NewBasicAuthStrategy(*cfg.Basic)
	} else {
		o.logger.Debug("Using oauth client credentials authentication")
		if o.tokenStore == nil {
			o.tokenStore = memory.NewTokenStore()
		}
		auth = NewOAuthClientCredentialsStrategy(*cfg.OAuth, o.tokenStore, o.httpClient, o.logger)
	}
	return &Client{
		host:    cfg.Host,
		auth:    auth,
		http:    o.httpClient,
		log:     o.logger,
		timeout: o.timeout,
	}, nil
}

// NewBasic builds a client authenticating with HTTP Basic and the tenant API key.
func NewBasic(host, apiKey, username, password string, opts ...Option) (*Client, error) {
	return New(types.ClientConfig{
		Host:  host,
		Basic: &types.BasicCredentials{Username: username, Password: password, APIKey: apiKey},
	}, opts...)
}

// NewOAuth builds a client authenticating with an OAuth2 client-credentials grant against authURL.
func NewOAuth(host, authURL, clientID, clientSecret, tenantCode string, opts ...Option) (*Client, error) {
	return New(types.ClientConfig{
		Host: host,
		OAuth: &types.OAuthCredentials{
			AuthURL:      authURL,
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TenantCode:   tenantCode,
		},
	}, opts...)
}

// Auth returns the client's authentication strategy.
func (c *Client) Auth() AuthStrategy {
	return c.auth
}

func (c *Client) Get(ctx context.Context, req Request) (*Result, error) {
	return c.Do(ctx, http.MethodGet, req)
}

func (c *Client) Post(ctx context.Context, req Request) (*Result, error) {
	return c.Do(ctx, http.MethodPost, req)
}

func (c *Client) Put(ctx context.Context, req Request) (*Result, error) {
	return c.Do(ctx, http.MethodPut, req)
}

func (c *Client) Patch(ctx context.Context, req Request) (*Result, error) {
	return c.Do(ctx, http.MethodPatch, req)
}

func (c *Client) Delete(ctx context.Context, req Request) (*Result, error) {
	return c.Do(ctx, http.MethodDelete, req)
}

// Do authenticates and sends req with the given method and returns the normalized response.
// An *APIError is returned as-is. Transport failures match types.ErrTransport and keep the
// underlying error reachable through errors.Is / errors.As.
func (c *Client) Do(ctx context.Context, method string, req Request) (*Result, error) {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	header, err := c.auth.Headers(ctx, req.Header)
	if err != nil {
		return nil, err
	}
	if ct := req.Header.Get(contentTypeHdrName); ct != "" && (req.Data != nil || req.JSON != nil) {
		// the body's declared type survives strategies that drop the caller's Content-Type
		header.Set(contentTypeHdrName, ct)
	}
	if method == http.MethodGet && getForcesJSONContentType {
		header.Set(contentTypeHdrName, mimeJSON)
	}

	body, err := encodeBody(req, header)
	if err != nil {
		return nil, err
	}
	endpoint := withQuery(BuildEndpoint(c.host, req.Module, req.Path, req.Version), req.Params)

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, types.Err(types.ErrTransport, err, "create request %s %s", method, endpoint)
	}
	httpReq.Header = header

	c.log.WithFields(log.Fields{"method": method, "url": endpoint}).Debug("Executing request")
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.WithError(err).WithFields(log.Fields{"method": method, "url": endpoint}).Error("Request failed")
		return nil, types.Err(types.ErrTransport, err, "%s %s", method, endpoint)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	result, err := Normalize(resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			c.log.WithFields(log.Fields{
				"method":    method,
				"url":       endpoint,
				"errorCode": apiErr.Code,
			}).Debug("API reported an error")
		}
		return nil, err
	}
	c.log.WithFields(log.Fields{"method": method, "url": endpoint, "status": result.StatusCode}).Debug("Request done")
	return result, nil
}

// encodeBody picks the request body. A JSON body gets a JSON Content-Type unless one is already set.
func encodeBody(req Request, header http.Header) (io.Reader, error) {
	if req.Data != nil {
		return bytes.NewReader(req.Data), nil
	}
	if req.JSON == nil {
		return nil, nil
	}
	b, err := json.Marshal(req.JSON)
	if err != nil {
		return nil, types.Err(types.ErrInvalidRequest, err, "marshal json body")
	}
	if header.Get(contentTypeHdrName) == "" {
		header.Set(contentTypeHdrName, mimeJSON)
	}
	return bytes.NewReader(b), nil
}

func withQuery(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	q := params.Encode()
	if strings.Contains(endpoint, "?") {
		return endpoint + "&" + q
	}
	return endpoint + "?" + q
}
