package users

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username or email already in use")
	ErrInvalidRole  = errors.New("invalid role")

	// ErrSelfManagement: an admin must use the normal account flows for
	// their own record, never the management interface.
	ErrSelfManagement = errors.New("cannot manage own account")

	ErrMissingFields    = errors.New("missing required fields")
	ErrPasswordTooShort = errors.New("password too short")
)
