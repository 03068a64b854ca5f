// Package resources maps UEM resources (devices, tags, users, organization groups, system info, MAM)
// onto the generic calls of the API client.
package resources

import (
	"context"
	"strconv"
	"ws1uem/internal/types"
	"ws1uem/internal/uem"
)

// APIClient is the generic call surface the accessors forward to. *uem.Client implements it.
type APIClient interface {
	Get(ctx context.Context, req uem.Request) (*uem.Result, error)
	Post(ctx context.Context, req uem.Request) (*uem.Result, error)
	Put(ctx context.Context, req uem.Request) (*uem.Result, error)
	Patch(ctx context.Context, req uem.Request) (*uem.Result, error)
	Delete(ctx context.Context, req uem.Request) (*uem.Result, error)
}

var _ APIClient = &uem.Client{}

const (
	moduleMDM    = "mdm"
	moduleSystem = "system"
	moduleMAM    = "mam"

	// The API routes device deletion through the upper-case module name.
	moduleMDMDelete = "MDM"
)

// Set groups all accessors bound to one client.
type Set struct {
	Devices *Devices
	Tags    *Tags
	Users   *Users
	Groups  *Groups
	Info    *Info
	MAM     *MAM
}

func New(client APIClient) *Set {
	return &Set{
		Devices: &Devices{mdm(client)},
		Tags:    &Tags{mdm(client)},
		Users:   &Users{system(client)},
		Groups:  &Groups{system(client)},
		Info:    &Info{system(client)},
		MAM:     &MAM{accessor{client: client, module: moduleMAM, deleteModule: moduleMAM}},
	}
}

// accessor binds a client to one API module.
type accessor struct {
	client       APIClient
	module       string
	deleteModule string
}

func mdm(client APIClient) accessor {
	return accessor{client: client, module: moduleMDM, deleteModule: moduleMDMDelete}
}

func system(client APIClient) accessor {
	return accessor{client: client, module: moduleSystem, deleteModule: moduleSystem}
}

func (a accessor) get(ctx context.Context, req uem.Request) (*uem.Result, error) {
	req.Module = a.module
	return a.client.Get(ctx, req)
}

func (a accessor) post(ctx context.Context, req uem.Request) (*uem.Result, error) {
	req.Module = a.module
	return a.client.Post(ctx, req)
}

func (a accessor) put(ctx context.Context, req uem.Request) (*uem.Result, error) {
	req.Module = a.module
	return a.client.Put(ctx, req)
}

func (a accessor) patch(ctx context.Context, req uem.Request) (*uem.Result, error) {
	req.Module = a.module
	return a.client.Patch(ctx, req)
}

func (a accessor) delete(ctx context.Context, req uem.Request) (*uem.Result, error) {
	req.Module = a.deleteModule
	return a.client.Delete(ctx, req)
}

// documentOf returns the decoded JSON body of r, or ErrInvalidResponse when the call answered without one.
func documentOf(r *uem.Result) (any, error) {
	if r == nil || !r.IsJSON() {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		return nil, types.Err(types.ErrInvalidResponse, nil, "expected a json body, got status %d", status)
	}
	return r.JSON, nil
}

// str renders a decoded JSON scalar the way it appears on the wire.
func str(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
