package uem

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"
	"ws1uem/internal/types"
)

func (s *UnitTestSuite) TestRoundTripURL() {
	c := s.newBasicClient()

	r, err := c.Get(ctx(), Request{Module: "mdm", Path: "/devices/123", Version: 2})
	s.Require().NoError(err)
	s.Equal(http.StatusOK, r.StatusCode)
	s.Equal(map[string]any{"ok": true}, r.JSON)

	req := s.lastRequest()
	s.Equal(http.MethodGet, req.Method)
	s.Equal("https://example.com/api/v2/mdm/devices/123", req.URL)
}

func (s *UnitTestSuite) TestVerbs() {
	c := s.newBasicClient()
	calls := map[string]func(context.Context, Request) (*Result, error){
		http.MethodGet:    c.Get,
		http.MethodPost:   c.Post,
		http.MethodPut:    c.Put,
		http.MethodPatch:  c.Patch,
		http.MethodDelete: c.Delete,
	}
	for method, call := range calls {
		_, err := call(ctx(), Request{Module: "system", Path: "users/1"})
		s.Require().NoError(err, method)
		req := s.lastRequest()
		s.Equal(method, req.Method)
		s.Equal("https://example.com/api/system/users/1", req.URL)
	}
}

func (s *UnitTestSuite) TestBasicHeadersSent() {
	c := s.newBasicClient()

	h := http.Header{}
	h.Set("Accept", "application/json;version=2")
	_, err := c.Get(ctx(), Request{Module: "system", Path: "/users/search", Header: h})
	s.Require().NoError(err)

	req := s.lastRequest()
	s.Equal("Basic YWRtaW46czNjcmV0", req.Header.Get("Authorization"))
	s.Equal(TestAPIKey, req.Header.Get("aw-tenant-code"))
	s.Equal("application/json;version=2", req.Header.Get("Accept"))
	s.Equal(0, s.tokenCallCount())
}

func (s *UnitTestSuite) TestGetForcesJSONContentType() {
	c := s.newBasicClient()

	h := http.Header{}
	h.Set("Content-Type", "text/plain")
	_, err := c.Get(ctx(), Request{Module: "system", Path: "/info", Header: h})
	s.Require().NoError(err)
	s.Equal("application/json", s.lastRequest().Header.Get("Content-Type"))

	_, err = c.Delete(ctx(), Request{Module: "mdm", Path: "/devices/1"})
	s.Require().NoError(err)
	s.Empty(s.lastRequest().Header.Get("Content-Type"))
}

func (s *UnitTestSuite) TestJSONBody() {
	c := s.newBasicClient()

	_, err := c.Post(ctx(), Request{
		Module: "mdm",
		Path:   "/tags/7/adddevices",
		JSON:   map[string]any{"BulkValues": map[string]any{"Value": []string{"42"}}},
	})
	s.Require().NoError(err)
	req := s.lastRequest()
	s.Equal("application/json", req.Header.Get("Content-Type"))
	s.JSONEq(`{"BulkValues":{"Value":["42"]}}`, string(req.Body))
}

func (s *UnitTestSuite) TestRawDataWinsOverJSON() {
	c := s.newBasicClient()

	h := http.Header{}
	h.Set("Content-Type", "application/xml")
	_, err := c.Post(ctx(), Request{
		Module: "system",
		Path:   "/groups/7",
		Header: h,
		Data:   []byte("<x/>"),
		JSON:   map[string]any{"ignored": true},
	})
	s.Require().NoError(err)
	req := s.lastRequest()
	s.Equal("<x/>", string(req.Body))
	s.Equal("application/xml", req.Header.Get("Content-Type"))
}

func (s *UnitTestSuite) TestUnencodableJSONBody() {
	c := s.newBasicClient()

	_, err := c.Post(ctx(), Request{Module: "mdm", Path: "/x", JSON: make(chan int)})
	s.ErrorIs(err, types.ErrInvalidRequest)
	s.Empty(s.requests)
}

func (s *UnitTestSuite) TestQueryParams() {
	c := s.newBasicClient()

	_, err := c.Get(ctx(), Request{
		Module: "mdm",
		Path:   "/devices/search",
		Params: url.Values{"page": {"0"}, "pagesize": {"500"}},
	})
	s.Require().NoError(err)
	s.Equal("https://example.com/api/mdm/devices/search?page=0&pagesize=500", s.lastRequest().URL)

	_, err = c.Post(ctx(), Request{
		Module: "mdm",
		Path:   "/devices/commands?command=Lock",
		Params: url.Values{"searchBy": {"Serialnumber"}},
	})
	s.Require().NoError(err)
	s.Equal("https://example.com/api/mdm/devices/commands?command=Lock&searchBy=Serialnumber", s.lastRequest().URL)
}

func (s *UnitTestSuite) TestAPIErrorReturnedUnchanged() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"errorCode": 12, "message": "bad"})
	}
	c := s.newBasicClient()

	r, err := c.Get(ctx(), Request{Module: "mdm", Path: "/devices/1"})
	s.Nil(r)
	apiErr, ok := err.(*APIError)
	s.Require().True(ok, "expected a bare *APIError, got %T", err)
	s.Equal(12, apiErr.Code)
	s.Equal("Error #12: bad", apiErr.Error())
}

func (s *UnitTestSuite) TestNonJSONServerErrorIsStatus() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "boom")
	}
	c := s.newBasicClient()

	r, err := c.Delete(ctx(), Request{Module: "MDM", Path: "/devices/1"})
	s.Require().NoError(err)
	s.Equal(http.StatusInternalServerError, r.StatusCode)
	s.False(r.IsJSON())
}

func (s *UnitTestSuite) TestNoContent() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
	c := s.newBasicClient()

	r, err := c.Post(ctx(), Request{Module: "mdm", Path: "/devices/1/clearpasscode"})
	s.Require().NoError(err)
	s.Equal(http.StatusNoContent, r.StatusCode)
}

func (s *UnitTestSuite) TestTransportError() {
	refused := errors.New("connection refused")
	s.transport.err = refused
	c := s.newBasicClient()

	_, err := c.Get(ctx(), Request{Module: "system", Path: "/info"})
	s.ErrorIs(err, types.ErrTransport)
	s.ErrorIs(err, refused)
}

func (s *UnitTestSuite) TestTimeout() {
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}
	c := s.newBasicClient()

	_, err := c.Get(ctx(), Request{Module: "system", Path: "/info", Timeout: 20 * time.Millisecond})
	s.ErrorIs(err, types.ErrTransport)
	s.ErrorIs(err, context.DeadlineExceeded)
}

func (s *UnitTestSuite) TestClientDefaultTimeout() {
	var remaining []time.Duration
	s.respond = func(w http.ResponseWriter, r *http.Request) {
		deadline, ok := r.Context().Deadline()
		s.True(ok)
		remaining = append(remaining, time.Until(deadline))
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
	c, err := NewBasic(TestHost, TestAPIKey, "admin", "s3cret",
		WithHTTPClient(s.httpClient), WithLogger(s.quietLogger()), WithTimeout(2*time.Minute))
	s.Require().NoError(err)

	_, err = c.Get(ctx(), Request{Module: "system", Path: "/info"})
	s.Require().NoError(err)
	_, err = c.Get(ctx(), Request{Module: "system", Path: "/info", Timeout: 5 * time.Second})
	s.Require().NoError(err)

	s.Require().Len(remaining, 2)
	s.Greater(remaining[0], DefaultTimeout)
	s.LessOrEqual(remaining[1], 5*time.Second)
}

func (s *UnitTestSuite) TestTLSServer() {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/mam/apps/internal" || r.Header.Get("aw-tenant-code") != TestAPIKey {
			writeJSON(w, http.StatusNotFound, map[string]any{"errorCode": 404, "message": "not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"Application": []any{}})
	}))
	defer srv.Close()

	host := strings.TrimPrefix(srv.URL, "https://")
	c, err := NewBasic(host, TestAPIKey, "admin", "s3cret", WithHTTPClient(srv.Client()), WithLogger(s.quietLogger()))
	s.Require().NoError(err)

	r, err := c.Get(ctx(), Request{Module: "mam", Path: "apps/internal", Version: 1})
	s.Require().NoError(err)
	s.Equal(map[string]any{"Application": []any{}}, r.JSON)
}

func (s *UnitTestSuite) TestInvalidConfig() {
	tests := []types.ClientConfig{
		{Host: TestHost},
		{Basic: &types.BasicCredentials{Username: "u", APIKey: "k"}},
		{
			Host:  TestHost,
			Basic: &types.BasicCredentials{Username: "u", APIKey: "k"},
			OAuth: &types.OAuthCredentials{AuthURL: TestAuthURL, ClientID: "i", ClientSecret: "s", TenantCode: "t"},
		},
	}
	for _, cfg := range tests {
		_, err := New(cfg)
		s.ErrorIs(err, types.ErrInvalidConfig)
	}
}
