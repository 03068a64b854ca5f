package resources

import (
	"net/http"
	"net/url"
)

func (s *UnitTestSuite) TestUsers() {
	attrs := map[string]any{"userName": "jdoe", "securityType": "directory"}
	tests := []struct {
		name   string
		call   func() error
		method string
		module string
		path   string
		accept string
	}{
		{"search", func() error { _, err := s.set.Users.Search(ctx(), url.Values{"username": {"jdoe"}}); return err },
			http.MethodGet, "system", "/users/search", ""},
		{"get", func() error { _, err := s.set.Users.GetByUUID(ctx(), "u-1"); return err },
			http.MethodGet, "system", "/users/u-1", "application/json;version=2"},
		{"create", func() error { _, err := s.set.Users.Create(ctx(), attrs); return err },
			http.MethodPost, "system", "/users/", "application/json;version=2"},
		{"update", func() error { _, err := s.set.Users.UpdateByUUID(ctx(), "u-1", attrs); return err },
			http.MethodPut, "system", "/users/u-1", "application/json;version=2"},
		{"delete by uuid", func() error { _, err := s.set.Users.DeleteByUUID(ctx(), "u-1"); return err },
			http.MethodDelete, "system", "/users/u-1", "application/json;version=2"},
		{"delete by id", func() error { _, err := s.set.Users.DeleteByID(ctx(), "17"); return err },
			http.MethodDelete, "system", "/users/17/delete", ""},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Require().NoError(tt.call())
			c := s.last()
			s.Equal(tt.method, c.Method)
			s.Equal(tt.module, c.Req.Module)
			s.Equal(tt.path, c.Req.Path)
			s.Equal(tt.accept, c.Req.Header.Get("Accept"))
		})
	}
}

func (s *UnitTestSuite) TestUserCreateBody() {
	_, err := s.set.Users.Create(ctx(), map[string]any{"userName": "jdoe", "securityType": "basic"})
	s.Require().NoError(err)
	s.JSONEq(`{"userName":"jdoe","securityType":"basic"}`, s.bodyJSON(s.last()))
}

func (s *UnitTestSuite) TestUserRegisterDevice() {
	details := []byte(`{"PlatformId":2,"FriendlyName":"laptop"}`)
	_, err := s.set.Users.RegisterDevice(ctx(), "17", details)
	s.Require().NoError(err)
	c := s.last()
	s.Equal(http.MethodPost, c.Method)
	s.Equal("/users/17/registerdevice", c.Req.Path)
	s.Equal(details, c.Req.Data)
}

func (s *UnitTestSuite) TestInfoAndMAM() {
	_, err := s.set.Info.GetEnvironmentInfo(ctx())
	s.Require().NoError(err)
	c := s.last()
	s.Equal(http.MethodGet, c.Method)
	s.Equal("system", c.Req.Module)
	s.Equal("/info", c.Req.Path)

	_, err = s.set.MAM.Get(ctx(), uemRequest("apps/internal/12", 1))
	s.Require().NoError(err)
	c = s.last()
	s.Equal("mam", c.Req.Module)
	s.Equal(1, c.Req.Version)
	s.Equal("apps/internal/12", c.Req.Path)

	_, err = s.set.MAM.Post(ctx(), uemRequest("blobs/uploadblob", 0))
	s.Require().NoError(err)
	c = s.last()
	s.Equal(http.MethodPost, c.Method)
	s.Equal("mam", c.Req.Module)
}
