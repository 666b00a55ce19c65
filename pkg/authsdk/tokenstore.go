package authsdk

import (
	"context"
	"errors"
	"time"
)

// TokenKey is the key the token is stored under.
const TokenKey = "jwtToken"

// KV is the client-local storage the token lives in.
// Get returns ("", false, nil) when key is not set.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// TokenStore keeps the login token on the client. It never talks to the
// network and never verifies the token.
type TokenStore struct {
	kv  KV
	now func() time.Time
}

// NewTokenStore wraps kv.
func NewTokenStore(kv KV) *TokenStore {
	return &TokenStore{kv: kv, now: time.Now}
}

// WithClock replaces the clock Session uses for expiry checks.
func (s *TokenStore) WithClock(now func() time.Time) *TokenStore {
	s.now = now
	return s
}

// Save stores token, replacing any previous one.
func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("authsdk: empty token")
	}
	return s.kv.Set(ctx, TokenKey, token)
}

// Load returns the stored token as-is.
func (s *TokenStore) Load(ctx context.Context) (string, bool, error) {
	tok, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil || !ok || tok == "" {
		return "", false, err
	}
	return tok, true, nil
}

// CurrentIdentity decodes the stored token for display. It reports absent
// when no token is stored or the token cannot be decoded; only storage
// failures are returned as errors.
func (s *TokenStore) CurrentIdentity(ctx context.Context) (Identity, bool, error) {
	tok, ok, err := s.Load(ctx)
	if err != nil || !ok {
		return Identity{}, false, err
	}

	id, err := DecodeUnverified(tok)
	if err != nil {
		return Identity{}, false, nil
	}
	return id, true, nil
}

// Clear removes the stored token.
func (s *TokenStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, TokenKey)
}

// Session is CurrentIdentity with expiry hygiene: a token whose exp has
// passed, or one that no longer decodes, is cleared and reported absent.
func (s *TokenStore) Session(ctx context.Context) (Identity, bool, error) {
	tok, ok, err := s.Load(ctx)
	if err != nil || !ok {
		return Identity{}, false, err
	}

	id, err := DecodeUnverified(tok)
	if err != nil || id.Expired(s.now()) {
		if err := s.Clear(ctx); err != nil {
			return Identity{}, false, err
		}
		return Identity{}, false, nil
	}
	return id, true, nil
}
