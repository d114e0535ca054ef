package user

import "errors"

var (
	ErrInvalidToken        = errors.New("invalid or missing token")
	ErrHRAccessRequired    = errors.New("hr role required")
	ErrOwnerAccessRequired = errors.New("owner role required")
)
