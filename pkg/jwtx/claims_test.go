package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/recipebox/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewClaims(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := jwtx.Subject{ID: "01HXYZ", Name: "Ann", Avatar: "https://example.test/a.png"}

	c := jwtx.NewClaims(s, "recipebox", time.Hour, now)

	require.Equal(t, "01HXYZ", c.Subject)
	require.Equal(t, "recipebox", c.Issuer)
	require.Equal(t, now, c.IssuedAt.Time)
	require.Equal(t, now.Add(time.Hour), c.ExpiresAt.Time)
	require.Equal(t, s, c.Identity())
}

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "recipebox",
		},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("recipebox"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		err := c.ValidateIssuer("other-service")
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	tests := []struct {
		name string
		exp  *jwt.NumericDate
		want error
	}{
		{"valid token", jwt.NewNumericDate(now.Add(time.Minute)), nil},
		{"expired token", jwt.NewNumericDate(now.Add(-time.Minute)), jwtx.ErrExpired},
		{"expires exactly now", jwt.NewNumericDate(now), jwtx.ErrExpired},
		{"missing exp", nil, jwtx.ErrMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: tt.exp}}
			err := c.ValidateExpiry(now)
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}
