package service

import "errors"

var (
	// ErrDuplicateEmail is returned when registering or updating to an email that is already taken.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrInvalidCredentials is returned when login credentials do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned when a credential record is missing.
	ErrUserNotFound = errors.New("user not found")
)
