package utils

import (
	"database/sql/driver"
	"errors"
	"net"
)

// Sentinel errors for the failure classes the API distinguishes.
// Controllers wrap these with context and map them to HTTP statuses.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrTransient        = errors.New("store temporarily unavailable")
	ErrRateLimited      = errors.New("rate limit exceeded")
)

// IsTransient reports whether err belongs to the retryable fault class:
// bad connections and network-level failures. Auth, not-found and
// validation errors are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTransient) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
