package resources

import (
	"context"
	"ws1uem/internal/uem"
)

// MAM gives generic access to the mam module (applications, blobs).
type MAM struct {
	accessor
}

// Get sends req to the mam module; req.Module is ignored.
func (m *MAM) Get(ctx context.Context, req uem.Request) (*uem.Result, error) {
	return m.get(ctx, req)
}

// Post sends req to the mam module; req.Module is ignored.
func (m *MAM) Post(ctx context.Context, req uem.Request) (*uem.Result, error) {
	return m.post(ctx, req)
}
