// Package entity defines the read models for the users feature.
package entity

import "time"

// Profile is the non-sensitive view of a registered user. It carries no
// credential material and is safe to render to any authenticated caller.
type Profile struct {
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone"`
	JoinAt      time.Time `json:"join_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}
