package resources

import (
	"net/http"
	"net/url"
	"ws1uem/internal/types"
	"ws1uem/internal/uem"
)

func uemRequest(path string, version int) uem.Request {
	return uem.Request{Module: "ignored", Path: path, Version: version}
}

func (s *UnitTestSuite) replyGroupSearch() {
	s.reply(http.MethodGet, "/groups/search", http.StatusOK, map[string]any{
		"LocationGroups": []any{
			map[string]any{"Id": map[string]any{"Value": 570}, "GroupId": "ACME", "Uuid": "og-uuid"},
		},
		"Total": 1,
	})
}

func (s *UnitTestSuite) TestGroupSearch() {
	_, err := s.set.Groups.Search(ctx(), url.Values{"name": {"acme"}})
	s.Require().NoError(err)
	c := s.last()
	s.Equal("system", c.Req.Module)
	s.Equal("/groups/search", c.Req.Path)
}

func (s *UnitTestSuite) TestGroupGetIDFromGroupID() {
	s.replyGroupSearch()

	id, err := s.set.Groups.GetIDFromGroupID(ctx(), "ACME")
	s.Require().NoError(err)
	s.Equal(570, id)
	s.Equal(url.Values{"groupid": {"ACME"}}, s.last().Req.Params)
}

func (s *UnitTestSuite) TestGroupGetIDFromGroupIDNoMatch() {
	s.reply(http.MethodGet, "/groups/search", http.StatusOK, map[string]any{"LocationGroups": []any{}})

	_, err := s.set.Groups.GetIDFromGroupID(ctx(), "NOPE")
	s.ErrorIs(err, types.ErrNotFound)
}

func (s *UnitTestSuite) TestGroupFieldsFromID() {
	s.reply(http.MethodGet, "/groups/570", http.StatusOK, map[string]any{"GroupId": "ACME", "Uuid": "og-uuid"})

	groupID, err := s.set.Groups.GetGroupIDFromID(ctx(), "570")
	s.Require().NoError(err)
	s.Equal("ACME", groupID)

	uuid, err := s.set.Groups.GetUUIDFromGroupID(ctx(), "570")
	s.Require().NoError(err)
	s.Equal("og-uuid", uuid)

	_, err = s.set.Groups.GetUUIDFromGroupID(ctx(), "571")
	s.ErrorIs(err, types.ErrNotFound)
}

func (s *UnitTestSuite) TestGroupCreate() {
	_, err := s.set.Groups.Create(ctx(), "570", []byte(`{"GroupId":"X"}`))
	s.Require().NoError(err)
	c := s.last()
	s.Equal(http.MethodPost, c.Method)
	s.Equal("/groups/570", c.Req.Path)
	s.Equal("application/json", c.Req.Header.Get("Content-Type"))
	s.Equal(`{"GroupId":"X"}`, string(c.Req.Data))
}

func (s *UnitTestSuite) TestGroupCreateCustomerOG() {
	s.reply(http.MethodPost, "/groups/7", http.StatusCreated, map[string]any{"Value": 901})

	id, err := s.set.Groups.CreateCustomerOG(ctx(), "ACME", "")
	s.Require().NoError(err)
	s.Equal(901, id)
	c := s.last()
	s.Equal("/groups/7", c.Req.Path)
	s.JSONEq(`{"GroupId":"ACME","Name":"ACME","LocationGroupType":"Customer"}`, string(c.Req.Data))

	_, err = s.set.Groups.CreateCustomerOG(ctx(), "ACME", "Acme Corp")
	s.Require().NoError(err)
	s.JSONEq(`{"GroupId":"ACME","Name":"Acme Corp","LocationGroupType":"Customer"}`, string(s.last().Req.Data))
}

func (s *UnitTestSuite) TestGroupCreateChildOG() {
	s.replyGroupSearch()
	s.reply(http.MethodPost, "/groups/570", http.StatusCreated, map[string]any{"Value": 902})

	id, err := s.set.Groups.CreateChildOG(ctx(), "ACME", "ACME-EU", "", "")
	s.Require().NoError(err)
	s.Equal(902, id)
	s.JSONEq(`{"GroupId":"ACME-EU","Name":"ACME-EU","LocationGroupType":"Container"}`, string(s.last().Req.Data))

	_, err = s.set.Groups.CreateChildOG(ctx(), "ACME", "ACME-US", "Region", "Americas")
	s.Require().NoError(err)
	s.JSONEq(`{"GroupId":"ACME-US","Name":"Americas","LocationGroupType":"Region"}`, string(s.last().Req.Data))
}

func (s *UnitTestSuite) TestGroupCreateWithoutValue() {
	s.reply(http.MethodPost, "/groups/7", http.StatusCreated, map[string]any{})

	_, err := s.set.Groups.CreateCustomerOG(ctx(), "ACME", "")
	s.ErrorIs(err, types.ErrNotFound)
}
