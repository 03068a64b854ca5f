package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidConfig    = errors.New("invalid client config")
	ErrTransport        = errors.New("transport failure")
	ErrTokenAcquisition = errors.New("oauth token acquisition failed")
	ErrInvalidRequest   = errors.New("invalid api request")
	ErrInvalidResponse  = errors.New("invalid api response")

	ErrInvalidBackend   = errors.New("invalid backend")
	ErrTokenStoreAccess = errors.New("token store read/write error")
)

func Err(typedError error, innerErr error, msgTemplate string, args ...any) error {
	if msgTemplate == "" {
		return errors.Join(typedError, innerErr)
	} else {
		return errors.Join(typedError, innerErr, fmt.Errorf(msgTemplate, args...))
	}
}
