// Package entity defines the domain entities for the messages feature.
package entity

import "time"

// Participant is the profile summary of a message's sender or recipient.
type Participant struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

// Message represents a text message exchanged between two users.
// FromUsername and ToUsername reference users without owning them.
// ReadAt stays nil until the recipient marks the message read; once set it is
// never cleared or overwritten.
type Message struct {
	ID           uint       `json:"id"`
	FromUsername string     `json:"from_username"`
	ToUsername   string     `json:"to_username"`
	Body         string     `json:"body"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at"`

	// FromUser and ToUser are populated by directional queries: the full
	// detail view carries both, the sent/received listings carry only the
	// counterpart.
	FromUser *Participant `json:"from_user,omitempty"`
	ToUser   *Participant `json:"to_user,omitempty"`
}

// IsParticipant reports whether username is the sender or the recipient.
func (m *Message) IsParticipant(username string) bool {
	return username == m.FromUsername || username == m.ToUsername
}
