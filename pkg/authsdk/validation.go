package authsdk

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// MaxPasswordBytes caps the encoded length of a password so every hasher
// the server may be configured with can accept it.
const MaxPasswordBytes = 72

// MsgPasswordTooLong is reported when a password exceeds MaxPasswordBytes.
const MsgPasswordTooLong = "Password must be at most 72 bytes"

// FieldErrors maps a request field (by its JSON name) to a user-facing
// message. It is the body of every 400 the user endpoints return.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	parts := make([]string, 0, len(f))
	for k, v := range f {
		parts = append(parts, k+": "+v)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks the register fields. Returns nil if all fields are valid.
func (r RegisterRequest) Validate() FieldErrors {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)

	return toFieldErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("Name field is required"),
			validation.RuneLength(2, 30).Error("Name must be between 2 and 30 characters"),
		),
		validation.Field(&r.Email,
			validation.Required.Error("Email field is required"),
			is.Email.Error("Email is invalid"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Password field is required"),
			validation.RuneLength(6, 30).Error("Password must be at least 6 characters"),
			validation.Length(0, MaxPasswordBytes).Error(MsgPasswordTooLong),
		),
	))
}

// Validate checks the login fields. Returns nil if all fields are valid.
func (r LoginRequest) Validate() FieldErrors {
	r.Email = strings.TrimSpace(r.Email)

	return toFieldErrors(validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("Email field is required"),
			is.Email.Error("Email is invalid"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("Password field is required"),
		),
	))
}

// toFieldErrors flattens ozzo's error map. Anything that is not a field
// error is reported under "form".
func toFieldErrors(err error) FieldErrors {
	if err == nil {
		return nil
	}

	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return FieldErrors{"form": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for field, ferr := range verrs {
		if ferr != nil {
			out[field] = ferr.Error()
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
