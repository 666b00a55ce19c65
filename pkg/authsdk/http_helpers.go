package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// url builds a complete URL by appending the path to the base URL.
func (c *SDKClient) url(path string) string {
	return c.BaseURL + path
}

// doRequest performs an HTTP request with the SDKClient's HTTP client.
// A non-nil payload is sent as JSON.
func (c *SDKClient) doRequest(
	ctx context.Context,
	method, path string,
	payload any,
	headers map[string]string,
) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	return resp, nil
}

// doAuthRequest performs a request carrying the stored token as the
// Authorization header. The token is sent verbatim; it already holds the
// "Bearer " prefix the login endpoint returned. An expired or undecodable
// token is cleared and never leaves the client.
func (c *SDKClient) doAuthRequest(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	if c.Tokens == nil {
		return nil, ErrNotLoggedIn
	}

	id, ok, err := c.Tokens.Session(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotLoggedIn
	}

	return c.doRequest(ctx, method, path, payload, map[string]string{
		"Authorization": id.Token,
	})
}

// decodeJSON decodes a JSON response into the target interface.
// Returns an *APIError if the response indicates an error.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		if err := parseErrorResponse(resp, bodyBytes); err != nil {
			return err
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
