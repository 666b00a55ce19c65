package authsdk

import "time"

// ============================================================================
// Internal Response Types (used for JSON unmarshaling)
// ============================================================================

// ErrorResponse is the body of every non-field error the service returns.
type ErrorResponse struct {
	// Error is a short machine readable code (e.g., "server_error")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description,omitempty"`
}

// ============================================================================
// User Types
// ============================================================================

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	// Name is the display name (2-30 chars)
	Name string `json:"name"`

	// Email is the login identifier, unique per account
	Email string `json:"email"`

	// Password is the plaintext password (6-30 chars); only its hash is stored
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by a successful login. Token already carries
// the "Bearer " prefix so it can be sent back as the Authorization header
// verbatim.
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// UserResponse is the public view of a user. It never includes the
// password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"created_at"`
}

// CurrentUserResponse is returned by GET /api/users/current.
type CurrentUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// MessageResponse is a plain {"msg": "..."} body.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`

	// Codec indicates whether tokens can be issued and verified
	Codec string `json:"codec"`
}
