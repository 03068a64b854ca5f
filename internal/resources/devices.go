package resources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"ws1uem/internal/types"
	"ws1uem/internal/uem"
)

const acceptHdrName = "Accept"

// Devices manages enrolled devices through the mdm module.
type Devices struct {
	accessor
}

// AltID identifies a device by an alternate identifier. The first non-empty field, in declaration order, is used.
type AltID struct {
	SerialNumber string
	MACAddress   string
	UDID         string
	IMEINumber   string
	EASID        string
}

// searchBy returns the API's searchby value and identifier for the first set field.
func (a AltID) searchBy() (string, string, bool) {
	switch {
	case a.SerialNumber != "":
		return "Serialnumber", a.SerialNumber, true
	case a.MACAddress != "":
		return "Macaddress", a.MACAddress, true
	case a.UDID != "":
		return "Udid", a.UDID, true
	case a.IMEINumber != "":
		return "ImeiNumber", a.IMEINumber, true
	case a.EASID != "":
		return "EasId", a.EASID, true
	default:
		return "", "", false
	}
}

func versionedAccept(version int) http.Header {
	h := http.Header{}
	h.Set(acceptHdrName, fmt.Sprintf("application/json;version=%d", version))
	return h
}

func (d *Devices) Search(ctx context.Context, params url.Values) (*uem.Result, error) {
	return d.get(ctx, uem.Request{Path: "/devices", Params: params})
}

// SearchV2 searches devices with the version 2 representation.
func (d *Devices) SearchV2(ctx context.Context, params url.Values) (*uem.Result, error) {
	return d.get(ctx, uem.Request{Path: "/devices/search", Params: params, Header: versionedAccept(2)})
}

// SearchV3 searches devices with the version 3 representation.
func (d *Devices) SearchV3(ctx context.Context, params url.Values) (*uem.Result, error) {
	return d.get(ctx, uem.Request{Path: "/devices/search", Params: params, Header: versionedAccept(3)})
}

func (d *Devices) SearchAll(ctx context.Context, params url.Values) (*uem.Result, error) {
	return d.get(ctx, uem.Request{Path: "/devices/search", Params: params})
}

// ExtensiveSearch returns full device details. Useful params: organizationgroupid, platform, startdatetime,
// enddatetime, deviceid, customattributeslist, enrollmentstatus, page, pagesize, macaddress.
func (d *Devices) ExtensiveSearch(ctx context.Context, params url.Values) (*uem.Result, error) {
	return d.get(ctx, uem.Request{Path: "/devices/extensivesearch", Params: params})
}

// GetDetailsByAltID returns the device matching id. It returns a nil result and no error when id has no field set.
func (d *Devices) GetDetailsByAltID(ctx context.Context, id AltID) (*uem.Result, error) {
	by, value, ok := id.searchBy()
	if !ok {
		return nil, nil
	}
	return d.Search(ctx, url.Values{"searchby": {by}, "id": {value}})
}

// GetIDByAltID resolves the numeric device id of the device matching id.
func (d *Devices) GetIDByAltID(ctx context.Context, id AltID) (int, error) {
	if _, _, ok := id.searchBy(); !ok {
		return 0, types.Err(types.ErrInvalidRequest, nil, "no alternate id given")
	}
	r, err := d.GetDetailsByAltID(ctx, id)
	if err != nil {
		return 0, err
	}
	return intField(r, "Id.Value", "device %+v", id)
}

func (d *Devices) ClearPasscode(ctx context.Context, deviceID string) (*uem.Result, error) {
	return d.post(ctx, uem.Request{Path: fmt.Sprintf("/devices/%s/clearpasscode", deviceID)})
}

// SendCommand sends a device command (e.g. Lock, EnterpriseWipe, SyncDevice) to the device with the given id.
func (d *Devices) SendCommand(ctx context.Context, command, deviceID string) (*uem.Result, error) {
	return d.post(ctx, uem.Request{
		Path:   fmt.Sprintf("/devices/%s/commands", deviceID),
		Params: url.Values{"command": {command}},
	})
}

// SendCommandByAltID sends a device command to the device found by an alternate id (searchBy: Serialnumber, Udid...).
func (d *Devices) SendCommandByAltID(ctx context.Context, command, searchBy, id string) (*uem.Result, error) {
	return d.post(ctx, uem.Request{
		Path:   "/devices/commands",
		Params: url.Values{"command": {command}, "searchBy": {searchBy}, "id": {id}},
	})
}

func (d *Devices) GetDetails(ctx context.Context, deviceID string) (*uem.Result, error) {
	return d.get(ctx, uem.Request{Path: fmt.Sprintf("/devices/%s", deviceID)})
}

// GetFileVaultRecoveryKey returns the FileVault recovery key of a macOS device.
func (d *Devices) GetFileVaultRecoveryKey(ctx context.Context, deviceUUID string) (*uem.Result, error) {
	return d.get(ctx, uem.Request{Path: fmt.Sprintf("/devices/%s/security/recovery-key", deviceUUID)})
}

func (d *Devices) GetSecurityInfo(ctx context.Context, deviceID string) (*uem.Result, error) {
	return d.get(ctx, uem.Request{Path: fmt.Sprintf("/devices/%s/security", deviceID)})
}

func (d *Devices) GetSecurityInfoByAltID(ctx context.Context, searchBy, id string) (*uem.Result, error) {
	return d.get(ctx, uem.Request{
		Path:   "/devices/security",
		Params: url.Values{"searchby": {searchBy}, "id": {id}},
	})
}

func (d *Devices) GetBulkSecurityInfo(ctx context.Context, organizationGroupID, user string) (*uem.Result, error) {
	return d.get(ctx, uem.Request{
		Path:   "/devices/securityinfosearch",
		Params: url.Values{"organizationgroupid": {organizationGroupID}, "user": {user}},
	})
}

// SwitchStagingToUser moves a staged device to a directory or basic user.
func (d *Devices) SwitchStagingToUser(ctx context.Context, deviceID, userID string) (*uem.Result, error) {
	return d.patch(ctx, uem.Request{Path: fmt.Sprintf("/devices/%s/enrollmentuser/%s", deviceID, userID)})
}

// GetManagedAdminAccount returns the administrator account configured on a DEP-enrolled macOS device.
func (d *Devices) GetManagedAdminAccount(ctx context.Context, deviceID string) (*uem.Result, error) {
	return d.get(ctx, uem.Request{Path: fmt.Sprintf("/devices/%s/security/managed-admin-information", deviceID)})
}

// Delete removes a device from management.
func (d *Devices) Delete(ctx context.Context, deviceID string) (*uem.Result, error) {
	return d.delete(ctx, uem.Request{Path: fmt.Sprintf("/devices/%s", deviceID)})
}

// DeleteCustomAttributes removes custom attributes from a device. names is comma-separated.
func (d *Devices) DeleteCustomAttributes(ctx context.Context, deviceID, names string) (*uem.Result, error) {
	return d.delete(ctx, uem.Request{
		Path: fmt.Sprintf("/devices/%s/customattributes", deviceID),
		JSON: customAttributes(names),
	})
}

// DeleteCustomAttributesBySerial removes custom attributes from the device with the given serial number.
func (d *Devices) DeleteCustomAttributesBySerial(ctx context.Context, serialNumber, names string) (*uem.Result, error) {
	return d.delete(ctx, uem.Request{
		Path: fmt.Sprintf("/devices/serialnumber/%s/customattributes", serialNumber),
		JSON: customAttributes(names),
	})
}

func (d *Devices) SearchEnrollmentTokens(ctx context.Context, organizationGroupUUID string, params url.Values) (*uem.Result, error) {
	return d.get(ctx, uem.Request{
		Path:   fmt.Sprintf("/groups/%s/enrollment-tokens", organizationGroupUUID),
		Params: params,
	})
}

// CreateEnrollmentToken creates a device enrollment token in the organization group from a registration record.
func (d *Devices) CreateEnrollmentToken(ctx context.Context, organizationGroupUUID string, record any) (*uem.Result, error) {
	return d.post(ctx, uem.Request{
		Path: fmt.Sprintf("/groups/%s/enrollment-tokens", organizationGroupUUID),
		JSON: record,
	})
}

type customAttributeName struct {
	Name string `json:"Name"`
}

type customAttributeList struct {
	CustomAttributes []customAttributeName `json:"CustomAttributes"`
}

func customAttributes(names string) customAttributeList {
	l := customAttributeList{CustomAttributes: []customAttributeName{}}
	for _, n := range strings.Split(names, ",") {
		l.CustomAttributes = append(l.CustomAttributes, customAttributeName{Name: n})
	}
	return l
}
