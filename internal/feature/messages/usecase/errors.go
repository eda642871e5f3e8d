// Package usecase implements the business logic for the messages feature,
// including the per-resource access-control rules.
package usecase

import "errors"

var (
	// ErrMessageNotFound is returned when no message matches the given id.
	ErrMessageNotFound = errors.New("message not found")

	// ErrForbidden is returned when an authenticated caller is not entitled
	// to the requested message operation.
	ErrForbidden = errors.New("not entitled to this resource")

	// ErrEmptyBody is returned when a message is created with no body.
	ErrEmptyBody = errors.New("message body must not be empty")

	// ErrUnknownRecipient is returned when the recipient username does not
	// reference an existing user.
	ErrUnknownRecipient = errors.New("recipient does not exist")
)
