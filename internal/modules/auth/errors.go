package auth

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password
	// so a login failure never reveals whether the account exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserExists          = errors.New("username or email already registered")
	ErrPasswordTooShort    = errors.New("password too short")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrMissingFields       = errors.New("missing required fields")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
)
