package authsdk

import (
	"context"
	"net/http"
)

// GetLiveness checks if the service process is up.
func (c *SDKClient) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks the database and the token codec. A 503 comes back
// as an *APIError.
func (c *SDKClient) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *SDKClient) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// Ready reports whether every readiness check passed.
func (h *HealthResponse) Ready() bool {
	if h == nil || h.Status != "ok" {
		return false
	}
	if h.Checks == nil {
		return true
	}
	return h.Checks.Database == "ok" && h.Checks.Codec == "ok"
}
