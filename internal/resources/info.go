package resources

import (
	"context"
	"ws1uem/internal/uem"
)

type Info struct {
	accessor
}

// GetEnvironmentInfo returns the system information of the environment, product version included.
func (i *Info) GetEnvironmentInfo(ctx context.Context) (*uem.Result, error) {
	return i.get(ctx, uem.Request{Path: "/info"})
}
