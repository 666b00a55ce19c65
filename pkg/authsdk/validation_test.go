package authsdk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  RegisterRequest
		want FieldErrors
	}{
		{
			name: "valid",
			req:  RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "secret123"},
			want: nil,
		},
		{
			name: "all empty",
			req:  RegisterRequest{},
			want: FieldErrors{
				"name":     "Name field is required",
				"email":    "Email field is required",
				"password": "Password field is required",
			},
		},
		{
			name: "whitespace name counts as empty",
			req:  RegisterRequest{Name: "   ", Email: "ann@x.com", Password: "secret123"},
			want: FieldErrors{"name": "Name field is required"},
		},
		{
			name: "short name",
			req:  RegisterRequest{Name: "A", Email: "ann@x.com", Password: "secret123"},
			want: FieldErrors{"name": "Name must be between 2 and 30 characters"},
		},
		{
			name: "long name",
			req:  RegisterRequest{Name: strings.Repeat("a", 31), Email: "ann@x.com", Password: "secret123"},
			want: FieldErrors{"name": "Name must be between 2 and 30 characters"},
		},
		{
			name: "bad email",
			req:  RegisterRequest{Name: "Ann", Email: "not-an-email", Password: "secret123"},
			want: FieldErrors{"email": "Email is invalid"},
		},
		{
			name: "short password",
			req:  RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: "12345"},
			want: FieldErrors{"password": "Password must be at least 6 characters"},
		},
		{
			name: "multibyte password at the byte cap",
			req:  RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: strings.Repeat("😀", 18)},
			want: nil,
		},
		{
			name: "multibyte password over the byte cap",
			req:  RegisterRequest{Name: "Ann", Email: "ann@x.com", Password: strings.Repeat("😀", 30)},
			want: FieldErrors{"password": MsgPasswordTooLong},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.req.Validate())
		})
	}
}

func TestLoginRequest_Validate(t *testing.T) {
	t.Parallel()

	require.Nil(t, LoginRequest{Email: "ann@x.com", Password: "x"}.Validate())

	errs := LoginRequest{Email: "nope"}.Validate()
	require.Equal(t, FieldErrors{
		"email":    "Email is invalid",
		"password": "Password field is required",
	}, errs)
	require.Contains(t, errs.Error(), "validation failed")
}
