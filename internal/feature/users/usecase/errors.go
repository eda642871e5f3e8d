// Package usecase implements the business logic for the users feature.
package usecase

import "errors"

// ErrUserNotFound is returned when no user matches the requested username.
var ErrUserNotFound = errors.New("user not found")
