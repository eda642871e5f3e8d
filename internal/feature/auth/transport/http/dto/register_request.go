// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "time"

// RegisterReq represents the request body for the /register endpoint.
// It uses Gin's binding tags for validation; every field is required.
type RegisterReq struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// UserResponse is the created-profile body returned by /register.
// It deliberately has no password field: the hash never leaves the core.
type UserResponse struct {
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	JoinAt      time.Time `json:"join_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}
