package authsdk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/recipebox/pkg/httpx"
	"github.com/stretchr/testify/require"
)

// fakeServer answers the user routes with canned bodies.
func fakeServer(t *testing.T, token string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users/register", func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email == "taken@x.com" {
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"email": "Email already exists"})
			return
		}
		httpx.WriteJSON(w, http.StatusOK, UserResponse{ID: "user-1", Name: req.Name, Email: req.Email})
	})
	mux.HandleFunc("POST /api/users/login", func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		switch {
		case req.Email != "ann@x.com":
			httpx.WriteJSON(w, http.StatusNotFound, map[string]string{"email": "User not found"})
		case req.Password != "secret123":
			httpx.WriteJSON(w, http.StatusBadRequest, map[string]string{"password": "Password incorrect"})
		default:
			httpx.WriteJSON(w, http.StatusOK, LoginResponse{Success: true, Token: token})
		}
	})
	mux.HandleFunc("GET /api/users/current", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != token {
			ErrUnauthorized.WriteError(w)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, CurrentUserResponse{ID: "user-1", Name: "Ann", Email: "ann@x.com"})
	})
	mux.HandleFunc("GET /api/users/test", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, MessageResponse{Msg: "User test route works"})
	})
	mux.HandleFunc("GET /api/users/all", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, []UserResponse{{ID: "user-1", Name: "Ann"}})
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Checks: &HealthChecks{Database: "error", Codec: "ok"}})
	})
	mux.HandleFunc("GET /livez", func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: "test"})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSDKClient_LoginFlow(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	token := issueToken(t, time.Now(), time.Hour)
	srv := fakeServer(t, token)

	tokens := NewTokenStore(NewMemoryKV())
	client := NewSDKClient(srv.URL+"/", tokens)

	_, err := client.Current(ctx)
	require.ErrorIs(t, err, ErrNotLoggedIn)

	user, err := client.Register(ctx, RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret123"})
	require.NoError(t, err)
	require.Equal(t, "user-1", user.ID)

	out, err := client.Login(ctx, LoginRequest{Email: "ann@x.com", Password: "secret123"})
	require.NoError(t, err)
	require.True(t, out.Success)

	saved, ok, err := tokens.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, token, saved)

	me, err := client.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, "ann@x.com", me.Email)

	require.NoError(t, client.Logout(ctx))
	_, err = client.Current(ctx)
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestSDKClient_FieldErrors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := fakeServer(t, "Bearer x")
	client := NewSDKClient(srv.URL, NewTokenStore(NewMemoryKV()))

	tests := []struct {
		name       string
		call       func() error
		wantStatus int
		field      string
		wantMsg    string
	}{
		{
			name: "local validation",
			call: func() error {
				_, err := client.Register(ctx, RegisterRequest{Name: "A", Email: "ann@x.com", Password: "secret123"})
				return err
			},
			wantStatus: http.StatusBadRequest,
			field:      "name",
			wantMsg:    "Name must be between 2 and 30 characters",
		},
		{
			name: "duplicate email",
			call: func() error {
				_, err := client.Register(ctx, RegisterRequest{Name: "Ann", Email: "taken@x.com", Password: "secret123"})
				return err
			},
			wantStatus: http.StatusBadRequest,
			field:      "email",
			wantMsg:    "Email already exists",
		},
		{
			name: "unknown user",
			call: func() error {
				_, err := client.Login(ctx, LoginRequest{Email: "bob@x.com", Password: "secret123"})
				return err
			},
			wantStatus: http.StatusNotFound,
			field:      "email",
			wantMsg:    "User not found",
		},
		{
			name: "wrong password",
			call: func() error {
				_, err := client.Login(ctx, LoginRequest{Email: "ann@x.com", Password: "nope12"})
				return err
			},
			wantStatus: http.StatusBadRequest,
			field:      "password",
			wantMsg:    "Password incorrect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var apiErr *APIError
			require.True(t, errors.As(tt.call(), &apiErr))
			require.Equal(t, tt.wantStatus, apiErr.StatusCode)
			require.Equal(t, ErrorCodeValidation, apiErr.Code)
			require.Equal(t, tt.wantMsg, apiErr.Field(tt.field))
		})
	}

	_, ok, err := client.Tokens.Load(ctx)
	require.NoError(t, err)
	require.False(t, ok, "failed logins store nothing")
}

func TestSDKClient_Unauthorized(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := fakeServer(t, issueToken(t, time.Now(), time.Hour))
	tokens := NewTokenStore(NewMemoryKV())
	require.NoError(t, tokens.Save(ctx, issueToken(t, time.Now(), 2*time.Hour)))

	_, err := NewSDKClient(srv.URL, tokens).Current(ctx)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, ErrorCodeUnauthorized, apiErr.Code)
}

func TestSDKClient_ExpiredTokenStaysLocal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		ErrUnauthorized.WriteError(w)
	}))
	t.Cleanup(srv.Close)

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: issueToken(t, time.Now().Add(-2*time.Hour), time.Hour)},
		{name: "undecodable", token: "Bearer rubbish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := NewTokenStore(NewMemoryKV())
			require.NoError(t, tokens.Save(ctx, tt.token))

			_, err := NewSDKClient(srv.URL, tokens).Current(ctx)
			require.ErrorIs(t, err, ErrNotLoggedIn)

			_, ok, err := tokens.Load(ctx)
			require.NoError(t, err)
			require.False(t, ok, "stale token is cleared")
		})
	}

	require.Zero(t, calls.Load(), "server is never contacted")
}

func TestSDKClient_PublicRoutes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	client := NewSDKClient(fakeServer(t, "").URL, nil)

	msg, err := client.Test(ctx)
	require.NoError(t, err)
	require.Equal(t, "User test route works", msg.Msg)

	users, err := client.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	live, err := client.GetLiveness(ctx)
	require.NoError(t, err)
	require.True(t, live.Ready())

	_, err = client.GetReadiness(ctx)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)

	require.NoError(t, client.Logout(ctx))
}
