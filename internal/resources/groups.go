package resources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"ws1uem/internal/query"
	"ws1uem/internal/types"
	"ws1uem/internal/uem"

	"github.com/goccy/go-json"
)

const (
	// GlobalGroupID is the id of the top-level organization group customer groups are created under.
	GlobalGroupID = "7"

	GroupTypeCustomer  = "Customer"
	GroupTypeContainer = "Container"
)

// Groups manages organization groups through the system module.
type Groups struct {
	accessor
}

type newGroup struct {
	GroupID           string `json:"GroupId"`
	Name              string `json:"Name"`
	LocationGroupType string `json:"LocationGroupType"`
}

func (g *Groups) Search(ctx context.Context, params url.Values) (*uem.Result, error) {
	return g.get(ctx, uem.Request{Path: "/groups/search", Params: params})
}

// GetIDFromGroupID returns the numeric id of the first organization group whose Group ID matches groupID.
func (g *Groups) GetIDFromGroupID(ctx context.Context, groupID string) (int, error) {
	r, err := g.Search(ctx, url.Values{"groupid": {groupID}})
	if err != nil {
		return 0, err
	}
	return intField(r, "LocationGroups[0].Id.Value", "group %s", groupID)
}

// GetGroupIDFromID returns the Group ID of the organization group with the numeric id.
func (g *Groups) GetGroupIDFromID(ctx context.Context, id string) (string, error) {
	return g.stringField(ctx, id, "GroupId")
}

// GetUUIDFromGroupID returns the UUID of the organization group with the numeric id.
func (g *Groups) GetUUIDFromGroupID(ctx context.Context, id string) (string, error) {
	return g.stringField(ctx, id, "Uuid")
}

func (g *Groups) stringField(ctx context.Context, id, field string) (string, error) {
	r, err := g.get(ctx, uem.Request{Path: fmt.Sprintf("/groups/%s", id)})
	if err != nil {
		return "", err
	}
	doc, err := documentOf(r)
	if err != nil {
		return "", err
	}
	v, err := query.EvalString(field, doc)
	if err != nil {
		return "", types.Err(types.ErrInvalidResponse, err, "")
	}
	if v == nil {
		return "", types.Err(types.ErrNotFound, nil, "group %s has no %s", id, field)
	}
	return *v, nil
}

// Create creates an organization group under parentID from a JSON document.
func (g *Groups) Create(ctx context.Context, parentID string, ogData []byte) (*uem.Result, error) {
	h := http.Header{}
	h.Set("Content-Type", "application/json")
	return g.post(ctx, uem.Request{Path: fmt.Sprintf("/groups/%s", parentID), Data: ogData, Header: h})
}

// CreateCustomerOG creates a Customer group under the global group and returns its id. name defaults to groupID.
func (g *Groups) CreateCustomerOG(ctx context.Context, groupID, name string) (int, error) {
	return g.create(ctx, GlobalGroupID, newGroup{GroupID: groupID, Name: name, LocationGroupType: GroupTypeCustomer})
}

// CreateChildOG creates a group under the group whose Group ID is parentGroupID and returns its id.
// ogType defaults to Container and name to groupID.
func (g *Groups) CreateChildOG(ctx context.Context, parentGroupID, groupID, ogType, name string) (int, error) {
	pid, err := g.GetIDFromGroupID(ctx, parentGroupID)
	if err != nil {
		return 0, err
	}
	if ogType == "" {
		ogType = GroupTypeContainer
	}
	return g.create(ctx, fmt.Sprint(pid), newGroup{GroupID: groupID, Name: name, LocationGroupType: ogType})
}

func (g *Groups) create(ctx context.Context, parentID string, og newGroup) (int, error) {
	if og.Name == "" {
		og.Name = og.GroupID
	}
	b, err := json.Marshal(og)
	if err != nil {
		return 0, types.Err(types.ErrInvalidRequest, err, "marshal group")
	}
	r, err := g.Create(ctx, parentID, b)
	if err != nil {
		return 0, err
	}
	return intField(r, "Value", "created group %s", og.GroupID)
}

// intField extracts an integer selected by expression; what names the lookup in errors.
func intField(r *uem.Result, expression string, what string, args ...any) (int, error) {
	doc, err := documentOf(r)
	if err != nil {
		return 0, err
	}
	v, err := query.EvalInt(expression, doc)
	if err != nil {
		return 0, types.Err(types.ErrInvalidResponse, err, "")
	}
	if v == nil {
		return 0, types.Err(types.ErrNotFound, nil, what+": no "+expression, args...)
	}
	return *v, nil
}
