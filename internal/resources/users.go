package resources

import (
	"context"
	"fmt"
	"net/url"
	"ws1uem/internal/uem"
)

// Users manages enrollment users through the system module.
type Users struct {
	accessor
}

// Search returns the enrollment users matching params (username, firstname, lastname, email,
// organizationgroupid, role).
func (u *Users) Search(ctx context.Context, params url.Values) (*uem.Result, error) {
	return u.get(ctx, uem.Request{Path: "/users/search", Params: params})
}

func (u *Users) GetByUUID(ctx context.Context, uuid string) (*uem.Result, error) {
	return u.get(ctx, uem.Request{Path: fmt.Sprintf("/users/%s", uuid), Header: versionedAccept(2)})
}

// Create creates an enrollment user. securityType is the only attribute the API requires.
func (u *Users) Create(ctx context.Context, attrs map[string]any) (*uem.Result, error) {
	return u.post(ctx, uem.Request{Path: "/users/", Header: versionedAccept(2), JSON: attrs})
}

func (u *Users) UpdateByUUID(ctx context.Context, uuid string, attrs map[string]any) (*uem.Result, error) {
	return u.put(ctx, uem.Request{Path: fmt.Sprintf("/users/%s", uuid), Header: versionedAccept(2), JSON: attrs})
}

func (u *Users) DeleteByUUID(ctx context.Context, uuid string) (*uem.Result, error) {
	return u.delete(ctx, uem.Request{Path: fmt.Sprintf("/users/%s", uuid), Header: versionedAccept(2)})
}

func (u *Users) DeleteByID(ctx context.Context, userID string) (*uem.Result, error) {
	return u.delete(ctx, uem.Request{Path: fmt.Sprintf("/users/%s/delete", userID)})
}

// RegisterDevice registers a device to the user; details is sent as-is.
func (u *Users) RegisterDevice(ctx context.Context, userID string, details []byte) (*uem.Result, error) {
	return u.post(ctx, uem.Request{Path: fmt.Sprintf("/users/%s/registerdevice", userID), Data: details})
}
