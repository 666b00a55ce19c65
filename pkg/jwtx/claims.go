package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long a login stays valid. There is no refresh
// token, so once this elapses the user signs in again.
const DefaultTokenTTL = 7 * 24 * time.Hour

// Claims are the access-token claims. Name and Avatar ride along so the
// client can render who is signed in without another round trip; nothing
// secret belongs here since the payload is only signed, not encrypted.
type Claims struct {
	jwt.RegisteredClaims

	// Display name of the user
	Name string `json:"name,omitempty"`

	// Avatar URL for the user
	Avatar string `json:"avatar,omitempty"`
}

// Subject is the identity a token is issued for.
type Subject struct {
	ID     string
	Name   string
	Avatar string
}

// NewClaims builds minimally-correct claims for s.
func NewClaims(s Subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Name:   s.Name,
		Avatar: s.Avatar,
	}
}

// Identity returns the subject the claims were issued for.
func (c Claims) Identity() Subject {
	return Subject{ID: c.RegisteredClaims.Subject, Name: c.Name, Avatar: c.Avatar}
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil // nothing to enforce
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateExpiry reports ErrExpired once now has reached exp. A token
// without exp never validates.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrMalformed
	}
	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
