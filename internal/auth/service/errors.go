package service

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/recipebox/pkg/authsdk"
)

// Error kinds. Match them with errors.Is against any *Error the service returns.
var (
	ErrValidation         = errors.New("validation_failed")
	ErrDuplicateAccount   = errors.New("duplicate_account")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInternal           = errors.New("internal_error")
)

// Error is a user-facing failure of the register/login flows. Fields holds
// the messages shown next to the offending form fields; Err is the
// underlying cause for ErrInternal and is never shown to the client.
type Error struct {
	Kind   error
	Fields authsdk.FieldErrors
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case len(e.Fields) > 0:
		return fmt.Sprintf("%s: %s", e.Kind, e.Fields.Error())
	default:
		return e.Kind.Error()
	}
}

// Is reports whether target is this error's kind.
func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func validationError(fields authsdk.FieldErrors) *Error {
	return &Error{Kind: ErrValidation, Fields: fields}
}

func fieldError(kind error, field, msg string) *Error {
	return &Error{Kind: kind, Fields: authsdk.FieldErrors{field: msg}}
}

func internalError(err error) *Error {
	return &Error{Kind: ErrInternal, Err: err}
}
