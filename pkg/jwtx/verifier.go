package jwtx

import (
	"errors"
)

// Verifier validates a JWT and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrIssuer     = errors.New("jwtx: issuer mismatch")
	ErrNoSecret   = errors.New("jwtx: empty signing secret")
)
