package models

import "errors"

var (
	// ErrNotFound - the resource does not exist
	ErrNotFound = errors.New("not found")
	// ErrForbidden - the resource exists but the caller has no access to it
	ErrForbidden = errors.New("access denied")
	// ErrQuotaExceeded - the user has reached their image limit
	ErrQuotaExceeded = errors.New("image quota exceeded")
)
