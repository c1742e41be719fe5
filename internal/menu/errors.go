package menu

import "github.com/pkg/errors"

var (
	ErrIdentityUnavailable = errors.New("identity unavailable")
	ErrIdentityInvalid     = errors.New("identity invalid")
	ErrContainerMissing    = errors.New("menu container missing")
)
