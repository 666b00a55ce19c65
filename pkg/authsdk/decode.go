package authsdk

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrUndecodable is returned by DecodeUnverified for strings that are not a JWT.
var ErrUndecodable = errors.New("authsdk: token cannot be decoded")

// Identity is what a client can read out of its own token for display.
//
// It is built WITHOUT checking the signature. Nothing in an Identity may be
// used to make an authorization decision; only the server's verified claims
// can do that.
type Identity struct {
	ID        string
	Name      string
	Avatar    string
	IssuedAt  time.Time
	ExpiresAt time.Time

	// Token is the stored string the identity was decoded from.
	Token string
}

// Expired reports whether exp has passed at now. A token without exp is
// treated as expired.
func (i Identity) Expired(now time.Time) bool {
	if i.ExpiresAt.IsZero() {
		return true
	}
	return !now.Before(i.ExpiresAt)
}

type displayClaims struct {
	jwt.RegisteredClaims
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// DecodeUnverified reads the payload of token. A leading "Bearer " is
// accepted since that is how the login endpoint hands tokens out.
func DecodeUnverified(token string) (Identity, error) {
	raw := strings.TrimSpace(token)
	if len(raw) > 7 && strings.EqualFold(raw[:7], "bearer ") {
		raw = strings.TrimSpace(raw[7:])
	}
	if raw == "" {
		return Identity{}, ErrUndecodable
	}

	var c displayClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &c); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUndecodable, err)
	}

	id := Identity{
		ID:     c.Subject,
		Name:   c.Name,
		Avatar: c.Avatar,
		Token:  token,
	}
	if c.IssuedAt != nil {
		id.IssuedAt = c.IssuedAt.Time
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id, nil
}
