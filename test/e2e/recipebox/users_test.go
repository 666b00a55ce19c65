//go:build e2e

package recipebox_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/aussiebroadwan/recipebox/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestUserLifecycle drives register, login, current and logout against a
// running container.
func TestUserLifecycle(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := newClient(baseURL)

	user := registerAndLogin(t, client, "Ann", "Ann@Example.com", "secret123")
	require.Equal(t, "ann@example.com", user.Email)
	require.Contains(t, user.Avatar, "gravatar.com/avatar/")

	id, ok, err := client.Tokens.Session(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, user.ID, id.ID)
	require.Equal(t, "Ann", id.Name)
	require.WithinDuration(t, time.Now().Add(7*24*time.Hour), id.ExpiresAt, time.Minute)

	current, err := client.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, user.ID, current.ID)
	require.Equal(t, "ann@example.com", current.Email)

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	require.NoError(t, client.Logout(ctx))
	_, err = client.Current(ctx)
	require.ErrorIs(t, err, authsdk.ErrNotLoggedIn)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := newClient(baseURL)
	registerAndLogin(t, client, "Ann", "ann@example.com", "secret123")

	_, err := client.Register(t.Context(), authsdk.RegisterRequest{
		Name: "Ann Again", Email: "ANN@example.com", Password: "secret123",
	})
	apiErr := assertStatus(t, err, http.StatusBadRequest)
	require.Equal(t, "Email already exists", apiErr.Field("email"))
}

func TestLogin_Failures(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	client := newClient(baseURL)
	registerAndLogin(t, client, "Ann", "ann@example.com", "secret123")

	_, err := client.Login(t.Context(), authsdk.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	apiErr := assertStatus(t, err, http.StatusNotFound)
	require.Equal(t, "User not found", apiErr.Field("email"))

	_, err = client.Login(t.Context(), authsdk.LoginRequest{Email: "ann@example.com", Password: "wrong-pass"})
	apiErr = assertStatus(t, err, http.StatusBadRequest)
	require.Equal(t, "Password incorrect", apiErr.Field("password"))
}

func TestCurrent_RejectsForeignToken(t *testing.T) {
	baseURL, cleanup := setupContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := newClient(baseURL)

	// Well formed, but signed with a different secret.
	forged := "Bearer eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
		"eyJzdWIiOiJ4IiwibmFtZSI6Ik1hbGxvcnkiLCJleHAiOjQxMDI0NDQ4MDB9." +
		"c2lnbmF0dXJlLW5vdC12YWxpZC1mb3ItdGhpcy1zZXJ2ZXI"
	require.NoError(t, client.Tokens.Save(ctx, forged))

	_, err := client.Current(ctx)
	assertStatus(t, err, http.StatusUnauthorized)
}

func TestRateLimitLoginEndpoint(t *testing.T) {
	baseURL, cleanup := setupContainerWithDefaultRateLimits(t)
	defer cleanup()

	client := newClient(baseURL)

	// The strict profile allows a burst of 5 before answering 429.
	var lastErr error
	for i := range 6 {
		_, err := client.Login(t.Context(), authsdk.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
		require.Error(t, err)
		if i < 5 {
			require.NotContains(t, err.Error(), "429", "Should not be rate limited yet (request %d)", i+1)
		}
		lastErr = err
	}

	assertStatus(t, lastErr, http.StatusTooManyRequests)
}
