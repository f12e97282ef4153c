package domain

import "time"

// User is the stored account record. Only the state flags change after
// creation; everything else is fixed at registration.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string // bcrypt encoded
	Enabled      bool
	Locked       bool
	CreatedAt    time.Time
}
