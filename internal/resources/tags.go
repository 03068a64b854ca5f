package resources

import (
	"context"
	"fmt"
	"ws1uem/internal/query"
	"ws1uem/internal/types"
	"ws1uem/internal/uem"
)

// Tags assigns device tags, which drive profile, app and compliance assignments.
type Tags struct {
	accessor
}

type bulkValues struct {
	BulkValues struct {
		Value []string `json:"Value"`
	} `json:"BulkValues"`
}

func singleBulkValue(v string) bulkValues {
	var b bulkValues
	b.BulkValues.Value = []string{v}
	return b
}

// AddDevice tags a device. Tagging an already tagged device is accepted by the API and sends the same body.
func (t *Tags) AddDevice(ctx context.Context, tagID, deviceID string) (*uem.Result, error) {
	return t.post(ctx, uem.Request{
		Path: fmt.Sprintf("/tags/%s/adddevices", tagID),
		JSON: singleBulkValue(deviceID),
	})
}

func (t *Tags) RemoveDevice(ctx context.Context, tagID, deviceID string) (*uem.Result, error) {
	return t.post(ctx, uem.Request{
		Path: fmt.Sprintf("/tags/%s/removedevices", tagID),
		JSON: singleBulkValue(deviceID),
	})
}

// HasDevice reports whether the tag is assigned to the device matching deviceID or deviceUUID.
// An empty identifier never matches.
func (t *Tags) HasDevice(ctx context.Context, tagID, deviceID, deviceUUID string) (bool, error) {
	r, err := t.get(ctx, uem.Request{Path: fmt.Sprintf("tags/%s/devices", tagID)})
	if err != nil {
		return false, err
	}
	doc, err := documentOf(r)
	if err != nil {
		return false, err
	}
	v, err := query.EvalAny("Device[].[DeviceId, DeviceUuid]", doc)
	if err != nil {
		return false, types.Err(types.ErrInvalidResponse, err, "")
	}
	pairs, _ := v.([]any)
	for _, p := range pairs {
		pair, ok := p.([]any)
		if !ok || len(pair) != 2 {
			continue
		}
		if id := str(pair[0]); deviceID != "" && id == deviceID {
			return true, nil
		}
		if uuid := str(pair[1]); deviceUUID != "" && uuid == deviceUUID {
			return true, nil
		}
	}
	return false, nil
}
