package authsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/aussiebroadwan/recipebox/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeUnauthorized   = "unauthorized"
	ErrorCodeRateLimited    = "rate_limit_exceeded"
	ErrorCodeServerError    = "server_error"
	ErrorCodeValidation     = "validation_failed"
)

// ============================================================================
// APIError - error returned by the recipebox API
// ============================================================================

// APIError is a non-2xx response from the service. It is used by the server
// to write error bodies and by the SDK client to report them.
//
// The user endpoints answer validation, duplicate, not-found and
// credential failures with a bare field map (e.g. {"email":"User not found"}).
// Those land in Fields and Code is set to ErrorCodeValidation.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine readable error code (e.g., "unauthorized")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description,omitempty"`

	// Fields holds per-field messages keyed by JSON field name
	Fields FieldErrors `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+e.Fields[k])
		}
		return fmt.Sprintf("%d: %s", e.StatusCode, strings.Join(parts, "; "))
	}
	if e.Description == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Field returns the message for one field, or "".
func (e *APIError) Field(name string) string {
	return e.Fields[name]
}

// WriteError writes this APIError to an HTTP response writer. A field error
// is written as the bare field map, anything else as {"error", "error_description"}.
func (e *APIError) WriteError(w http.ResponseWriter) {
	if len(e.Fields) > 0 {
		httpx.WriteJSON(w, e.StatusCode, e.Fields)
		return
	}
	httpx.WriteError(w, e.StatusCode, e.Code, e.Description)
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the body cannot be decoded.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request body is malformed",
	}

	// ErrUnsupportedMediaType is returned for bodies that are neither JSON nor a form.
	ErrUnsupportedMediaType = &APIError{
		StatusCode:  http.StatusUnsupportedMediaType,
		Code:        ErrorCodeInvalidRequest,
		Description: "content-type must be application/json or application/x-www-form-urlencoded",
	}

	// ErrUnauthorized is returned when the bearer token is missing, invalid or expired.
	ErrUnauthorized = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthorized,
		Description: "authentication required",
	}

	// ErrServerError is returned when the service hit an unexpected fault.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
	}
)

// NewFieldError creates an APIError carrying a field map.
func NewFieldError(statusCode int, fields FieldErrors) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       ErrorCodeValidation,
		Fields:     fields,
	}
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response into an *APIError.
// Returns nil if the response indicates success (2xx status code).
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	var fields FieldErrors
	if err := json.Unmarshal(body, &fields); err == nil && len(fields) > 0 {
		return NewFieldError(resp.StatusCode, fields)
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
