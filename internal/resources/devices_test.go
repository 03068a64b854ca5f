package resources

import (
	"errors"
	"net/http"
	"net/url"
	"ws1uem/internal/types"
)

func (s *UnitTestSuite) TestDeviceSearches() {
	params := url.Values{"user": {"jdoe"}}
	tests := []struct {
		name   string
		call   func() error
		path   string
		accept string
	}{
		{"search", func() error { _, err := s.set.Devices.Search(ctx(), params); return err }, "/devices", ""},
		{"v2", func() error { _, err := s.set.Devices.SearchV2(ctx(), params); return err }, "/devices/search", "application/json;version=2"},
		{"v3", func() error { _, err := s.set.Devices.SearchV3(ctx(), params); return err }, "/devices/search", "application/json;version=3"},
		{"all", func() error { _, err := s.set.Devices.SearchAll(ctx(), params); return err }, "/devices/search", ""},
		{"extensive", func() error { _, err := s.set.Devices.ExtensiveSearch(ctx(), params); return err }, "/devices/extensivesearch", ""},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Require().NoError(tt.call())
			c := s.last()
			s.Equal(http.MethodGet, c.Method)
			s.Equal("mdm", c.Req.Module)
			s.Equal(tt.path, c.Req.Path)
			s.Equal(params, c.Req.Params)
			s.Equal(tt.accept, c.Req.Header.Get("Accept"))
		})
	}
}

func (s *UnitTestSuite) TestDeviceAltID() {
	tests := []struct {
		id       AltID
		searchBy string
		value    string
	}{
		{AltID{SerialNumber: "C02X", UDID: "ignored"}, "Serialnumber", "C02X"},
		{AltID{MACAddress: "aa:bb"}, "Macaddress", "aa:bb"},
		{AltID{UDID: "u-1", EASID: "ignored"}, "Udid", "u-1"},
		{AltID{IMEINumber: "3569"}, "ImeiNumber", "3569"},
		{AltID{EASID: "eas"}, "EasId", "eas"},
	}
	for _, tt := range tests {
		_, err := s.set.Devices.GetDetailsByAltID(ctx(), tt.id)
		s.Require().NoError(err)
		c := s.last()
		s.Equal("/devices", c.Req.Path)
		s.Equal(url.Values{"searchby": {tt.searchBy}, "id": {tt.value}}, c.Req.Params)
	}
}

func (s *UnitTestSuite) TestDeviceAltIDNoneSet() {
	r, err := s.set.Devices.GetDetailsByAltID(ctx(), AltID{})
	s.NoError(err)
	s.Nil(r)
	s.Empty(s.client.calls)

	_, err = s.set.Devices.GetIDByAltID(ctx(), AltID{})
	s.ErrorIs(err, types.ErrInvalidRequest)
}

func (s *UnitTestSuite) TestDeviceGetIDByAltID() {
	s.reply(http.MethodGet, "/devices", http.StatusOK, map[string]any{"Id": map[string]any{"Value": 1234}, "SerialNumber": "C02X"})

	id, err := s.set.Devices.GetIDByAltID(ctx(), AltID{SerialNumber: "C02X"})
	s.Require().NoError(err)
	s.Equal(1234, id)
}

func (s *UnitTestSuite) TestDeviceGetIDByAltIDMissing() {
	s.reply(http.MethodGet, "/devices", http.StatusOK, map[string]any{"SerialNumber": "C02X"})

	_, err := s.set.Devices.GetIDByAltID(ctx(), AltID{SerialNumber: "C02X"})
	s.ErrorIs(err, types.ErrNotFound)
}

func (s *UnitTestSuite) TestDeviceCommands() {
	_, err := s.set.Devices.SendCommand(ctx(), "Lock", "42")
	s.Require().NoError(err)
	c := s.last()
	s.Equal(http.MethodPost, c.Method)
	s.Equal("/devices/42/commands", c.Req.Path)
	s.Equal("command=Lock", c.Req.Params.Encode())

	_, err = s.set.Devices.SendCommandByAltID(ctx(), "SyncDevice", "Serialnumber", "C02X")
	s.Require().NoError(err)
	c = s.last()
	s.Equal("/devices/commands", c.Req.Path)
	s.Equal(url.Values{"command": {"SyncDevice"}, "searchBy": {"Serialnumber"}, "id": {"C02X"}}, c.Req.Params)

	_, err = s.set.Devices.ClearPasscode(ctx(), "42")
	s.Require().NoError(err)
	c = s.last()
	s.Equal(http.MethodPost, c.Method)
	s.Equal("/devices/42/clearpasscode", c.Req.Path)
}

func (s *UnitTestSuite) TestDeviceLookups() {
	tests := []struct {
		name   string
		call   func() error
		method string
		path   string
		params url.Values
	}{
		{"details", func() error { _, err := s.set.Devices.GetDetails(ctx(), "42"); return err }, http.MethodGet, "/devices/42", nil},
		{"recovery key", func() error { _, err := s.set.Devices.GetFileVaultRecoveryKey(ctx(), "u-1"); return err }, http.MethodGet, "/devices/u-1/security/recovery-key", nil},
		{"security", func() error { _, err := s.set.Devices.GetSecurityInfo(ctx(), "42"); return err }, http.MethodGet, "/devices/42/security", nil},
		{"security alt", func() error { _, err := s.set.Devices.GetSecurityInfoByAltID(ctx(), "Udid", "u-1"); return err },
			http.MethodGet, "/devices/security", url.Values{"searchby": {"Udid"}, "id": {"u-1"}}},
		{"bulk security", func() error { _, err := s.set.Devices.GetBulkSecurityInfo(ctx(), "570", "jdoe"); return err },
			http.MethodGet, "/devices/securityinfosearch", url.Values{"organizationgroupid": {"570"}, "user": {"jdoe"}}},
		{"staging switch", func() error { _, err := s.set.Devices.SwitchStagingToUser(ctx(), "42", "7"); return err }, http.MethodPatch, "/devices/42/enrollmentuser/7", nil},
		{"managed admin", func() error { _, err := s.set.Devices.GetManagedAdminAccount(ctx(), "u-1"); return err }, http.MethodGet, "/devices/u-1/security/managed-admin-information", nil},
		{"enrollment tokens", func() error {
			_, err := s.set.Devices.SearchEnrollmentTokens(ctx(), "og-uuid", url.Values{"page": {"1"}})
			return err
		}, http.MethodGet, "/groups/og-uuid/enrollment-tokens", url.Values{"page": {"1"}}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Require().NoError(tt.call())
			c := s.last()
			s.Equal(tt.method, c.Method)
			s.Equal("mdm", c.Req.Module)
			s.Equal(tt.path, c.Req.Path)
			s.Equal(tt.params, c.Req.Params)
		})
	}
}

func (s *UnitTestSuite) TestDeviceDeleteUsesUpperCaseModule() {
	_, err := s.set.Devices.Delete(ctx(), "42")
	s.Require().NoError(err)
	c := s.last()
	s.Equal(http.MethodDelete, c.Method)
	s.Equal("MDM", c.Req.Module)
	s.Equal("/devices/42", c.Req.Path)
}

func (s *UnitTestSuite) TestDeviceDeleteCustomAttributes() {
	_, err := s.set.Devices.DeleteCustomAttributes(ctx(), "42", "Owner,Site")
	s.Require().NoError(err)
	c := s.last()
	s.Equal("MDM", c.Req.Module)
	s.Equal("/devices/42/customattributes", c.Req.Path)
	s.JSONEq(`{"CustomAttributes":[{"Name":"Owner"},{"Name":"Site"}]}`, s.bodyJSON(c))

	_, err = s.set.Devices.DeleteCustomAttributesBySerial(ctx(), "C02X", "Owner")
	s.Require().NoError(err)
	c = s.last()
	s.Equal("/devices/serialnumber/C02X/customattributes", c.Req.Path)
	s.JSONEq(`{"CustomAttributes":[{"Name":"Owner"}]}`, s.bodyJSON(c))
}

func (s *UnitTestSuite) TestDeviceCreateEnrollmentToken() {
	record := map[string]any{"friendly_name": "kiosk", "platform_id": 12}
	_, err := s.set.Devices.CreateEnrollmentToken(ctx(), "og-uuid", record)
	s.Require().NoError(err)
	c := s.last()
	s.Equal(http.MethodPost, c.Method)
	s.Equal("/groups/og-uuid/enrollment-tokens", c.Req.Path)
	s.Equal(record, c.Req.JSON)
}

func (s *UnitTestSuite) TestDeviceErrorPropagates() {
	boom := errors.New("boom")
	s.client.err = boom
	_, err := s.set.Devices.GetDetails(ctx(), "42")
	s.ErrorIs(err, boom)
}
