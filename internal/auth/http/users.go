package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/recipebox/internal/auth/domain"
	"github.com/aussiebroadwan/recipebox/internal/auth/service"
	"github.com/aussiebroadwan/recipebox/pkg/authsdk"
	"github.com/aussiebroadwan/recipebox/pkg/httpx"
	"github.com/aussiebroadwan/recipebox/pkg/slogx"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleTest godoc
//
//	@Summary		Test route
//	@Description	Public route used to check the users API is mounted
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	authsdk.MessageResponse	"msg"
//	@Router			/api/users/test [get].
func (h *UsersHandler) HandleTest(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Msg: "User test route works"})
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Create an account. Accepts JSON or a urlencoded form.
//	@Tags			Users
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			body	body		authsdk.RegisterRequest	true	"name, email, password"
//	@Success		200		{object}	authsdk.UserResponse	"created user"
//	@Failure		400		{object}	map[string]string		"field errors, e.g. {\"email\":\"Email already exists\"}"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error"
//	@Router			/api/users/register [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if !decode(w, r, &req) {
		return
	}

	user, err := h.UserService.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleLogin godoc
//
//	@Summary		Login
//	@Description	Exchange email and password for a signed token valid for one week.
//	@Description	The token comes back with its "Bearer " prefix and is sent as the Authorization header unchanged.
//	@Tags			Users
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			body	body		authsdk.LoginRequest	true	"email, password"
//	@Success		200		{object}	authsdk.LoginResponse	"success, token"
//	@Failure		400		{object}	map[string]string		"field errors, e.g. {\"password\":\"Password incorrect\"}"
//	@Failure		404		{object}	map[string]string		"{\"email\":\"User not found\"}"
//	@Failure		500		{object}	authsdk.ErrorResponse	"error"
//	@Router			/api/users/login [post].
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if !decode(w, r, &req) {
		return
	}

	token, err := h.UserService.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{Success: true, Token: token})
}

// HandleCurrent godoc
//
//	@Summary		Current user
//	@Description	Returns the account the bearer token belongs to
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.CurrentUserResponse	"id, name, email"
//	@Failure		401	{object}	authsdk.ErrorResponse		"missing, invalid or expired token"
//	@Failure		500	{object}	authsdk.ErrorResponse		"error"
//	@Router			/api/users/current [get].
func (h *UsersHandler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := httpx.ClaimsFromContext(ctx)
	if !ok || claims.Subject == "" {
		authsdk.ErrUnauthorized.WriteError(w)
		return
	}
	subject := claims.Identity()

	user, err := h.UserService.Current(ctx, subject.ID)
	if err != nil {
		// A valid token for an account that no longer exists.
		if errors.Is(err, service.ErrUserNotFound) {
			slogx.FromContext(ctx).Warn("token subject not found",
				"user_id", subject.ID,
				"token_name", subject.Name,
				"expires_at", claims.ExpiresAt,
			)
			authsdk.ErrUnauthorized.WriteError(w)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.CurrentUserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}

// HandleList godoc
//
//	@Summary		List users
//	@Description	Every registered account in signup order. Password hashes are never included.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{array}		authsdk.UserResponse	"users"
//	@Failure		500	{object}	authsdk.ErrorResponse	"error"
//	@Router			/api/users/all [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]authsdk.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

func toUserResponse(u domain.User) authsdk.UserResponse {
	return authsdk.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// decode reads the request body, writing the error response itself on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := httpx.DecodeBody(w, r, dst)
	switch {
	case err == nil:
		return true
	case errors.Is(err, httpx.ErrUnsupportedMediaType):
		authsdk.ErrUnsupportedMediaType.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Debug("bad request body", "err", err)
		authsdk.ErrInvalidRequest.WriteError(w)
	}
	return false
}

// writeServiceError maps service errors to responses. Field errors go out
// as the bare field map; anything else is an opaque 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) || svcErr.Kind == service.ErrInternal {
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		authsdk.ErrServerError.WriteError(w)
		return
	}

	status := http.StatusBadRequest
	if errors.Is(err, service.ErrUserNotFound) {
		status = http.StatusNotFound
	}
	authsdk.NewFieldError(status, svcErr.Fields).WriteError(w)
}
