// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrMissingFields is returned when a registration request omits one of
	// the required fields.
	ErrMissingFields = errors.New("all fields are required")

	// ErrUsernameTaken is returned when attempting to register a username
	// that already exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrUserNotFound is returned when a user cannot be found by username.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned on login failure. It is deliberately
	// generic: callers cannot tell an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)
