package authsdk

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
)

// ErrNotLoggedIn is returned by calls that need a stored token when there is none.
var ErrNotLoggedIn = errors.New("authsdk: not logged in")

// SDKClient is a client for the recipebox user API.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// Tokens persists the token returned by Login. Calls to authenticated
	// endpoints read it from here. May be nil for anonymous use.
	Tokens *TokenStore
}

// NewSDKClient creates a new client. tokens may be nil.
func NewSDKClient(baseURL string, tokens *TokenStore) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Tokens: tokens,
	}
}

// Register creates an account. The request is validated locally first; a
// local failure is returned as an *APIError with status 400, matching what
// the server would have answered.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	if errs := req.Validate(); errs != nil {
		return nil, NewFieldError(http.StatusBadRequest, errs)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/users/register", req, nil)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a token. When the client has a
// TokenStore the token is saved there, overwriting any previous one.
func (c *SDKClient) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if errs := req.Validate(); errs != nil {
		return nil, NewFieldError(http.StatusBadRequest, errs)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/api/users/login", req, nil)
	if err != nil {
		return nil, err
	}

	var out LoginResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	if c.Tokens != nil {
		if err := c.Tokens.Save(ctx, out.Token); err != nil {
			return nil, err
		}
	}
	return &out, nil
}

// Logout forgets the stored token. There is nothing to tell the server.
func (c *SDKClient) Logout(ctx context.Context) error {
	if c.Tokens == nil {
		return nil
	}
	return c.Tokens.Clear(ctx)
}

// Current asks the server who the stored token belongs to.
func (c *SDKClient) Current(ctx context.Context) (*CurrentUserResponse, error) {
	resp, err := c.doAuthRequest(ctx, http.MethodGet, "/api/users/current", nil)
	if err != nil {
		return nil, err
	}

	var out CurrentUserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns every registered user.
func (c *SDKClient) ListUsers(ctx context.Context) ([]UserResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/users/all", nil, nil)
	if err != nil {
		return nil, err
	}

	var out []UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// Test hits the public test route.
func (c *SDKClient) Test(ctx context.Context) (*MessageResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/users/test", nil, nil)
	if err != nil {
		return nil, err
	}

	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
