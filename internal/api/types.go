// Package api defines the response envelopes shared by all HTTP handlers.
package api

// ErrorResponse is the uniform error body: a stable, human-readable message
// that never leaks internals (hashes, SQL, stack traces).
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries a simple status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}
