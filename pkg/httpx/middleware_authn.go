package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/recipebox/pkg/jwtx"
	"github.com/aussiebroadwan/recipebox/pkg/slogx"
)

// Authenticate verifies the bearer token on each request and stores the
// resulting identity in the request context.
//
// A request without an Authorization header is rejected when required is
// true and passed through anonymously otherwise. A header that is present
// but fails verification is always rejected; callers only ever see one
// generic 401 whatever the reason was.
func Authenticate(v jwtx.Verifier, required bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" {
				if required {
					writeBearerChallenge(w)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := bearerToken(authz)
			if !ok {
				log.Debug("authorization header is not a bearer token")
				writeBearerError(w)
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w)
				return
			}

			// Inject into context for downstream handlers.
			ctx = WithClaims(ctx, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that do not carry a valid token.
func RequireAuth(v jwtx.Verifier) Middleware { return Authenticate(v, true) }

// OptionalAuth attaches an identity when a token is sent, nothing otherwise.
func OptionalAuth(v jwtx.Verifier) Middleware { return Authenticate(v, false) }

// bearerToken pulls the token out of "Bearer <token>". The scheme is
// matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RFC 6750: no error code when the client sent no credentials at all.
func writeBearerChallenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="recipebox"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
}

func writeBearerError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="recipebox", error="invalid_token"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
}
