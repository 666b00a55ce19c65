package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Codec signs and verifies HS256 tokens with one shared secret. It holds no
// mutable state after construction and is safe for concurrent use.
type Codec struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithClock overrides the time source, mostly for tests.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) { c.now = now }
}

// WithIssuer stamps iss on issued tokens and requires it on verification.
func WithIssuer(issuer string) CodecOption {
	return func(c *Codec) { c.issuer = issuer }
}

// NewCodec creates a codec for secret. The secret is copied.
func NewCodec(secret []byte, opts ...CodecOption) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}

	c := &Codec{
		secret: append([]byte(nil), secret...),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Issue signs a token for s that expires ttl from now.
func (c *Codec) Issue(s Subject, ttl time.Duration) (string, Claims, error) {
	if s.ID == "" {
		return "", Claims{}, errors.New("jwtx: empty subject")
	}
	if ttl <= 0 {
		return "", Claims{}, fmt.Errorf("jwtx: non-positive ttl %s", ttl)
	}

	claims := NewClaims(s, c.issuer, ttl, c.now().UTC())
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("jwtx: sign: %w", err)
	}
	return token, claims, nil
}

// Verify checks the signature and then the expiry of token. Only HS256 is
// accepted, which shuts out "alg":"none" and key-confusion tricks.
func (c *Codec) Verify(token string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)

	claims := &Claims{}
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}

	if claims.RegisteredClaims.Subject == "" {
		return Claims{}, ErrMalformed
	}
	// The parser only has second precision; exp is exclusive.
	if err := claims.ValidateExpiry(c.now()); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateIssuer(c.issuer); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}

// mapParseError folds the jwt library's error tree into our sentinels.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
