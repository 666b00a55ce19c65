package domain

import "time"

// User is a registered account. Email is stored lower-cased and is unique.
type User struct {
	ID           string
	Name         string
	Email        string
	Avatar       string // gravatar URL
	PasswordHash string // bcrypt or argon2id encoded, never plaintext
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
