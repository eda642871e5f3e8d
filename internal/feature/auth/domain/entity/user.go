// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It is the system of record for identity: credentials plus profile fields.
type User struct {
	// ID is the surrogate primary key.
	ID uint `gorm:"primaryKey"`

	// Username is the public, immutable identifier for the user.
	// It must be unique across all users.
	Username string `gorm:"uniqueIndex;size:64;not null"`

	// Password is the bcrypt hash of the user's password.
	// This never stores plaintext and must never be rendered to clients.
	Password string `gorm:"size:255;not null"`

	FirstName string `gorm:"size:64;not null"`
	LastName  string `gorm:"size:64;not null"`
	Phone     string `gorm:"size:32;not null"`

	// JoinAt is set once when the account is created.
	JoinAt time.Time `gorm:"not null"`

	// LastLoginAt is updated on every successful authentication.
	LastLoginAt time.Time `gorm:"not null"`
}

// TableName pins the table name regardless of GORM pluralization rules.
func (User) TableName() string {
	return "users"
}
