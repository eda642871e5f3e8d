// Package dto defines data transfer objects for the messages feature's HTTP transport layer.
package dto

// SendReq represents the request body for POST /messages.
// The sender is never part of the body: it is always the authenticated caller.
type SendReq struct {
	ToUsername string `json:"to_username" binding:"required"`
	Body       string `json:"body" binding:"required"`
}
