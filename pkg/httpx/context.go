package httpx

import (
	"context"

	"github.com/aussiebroadwan/recipebox/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyClaims ctxKey = "claims"
)

// WithClaims attaches a verified identity to ctx.
func WithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// SubjectFromContext returns the authenticated user id, if any.
func SubjectFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}

// ClaimsFromContext returns the verified claims, if any.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}
