package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/recipebox/internal/auth/service"
	"github.com/aussiebroadwan/recipebox/internal/auth/store"
	"github.com/aussiebroadwan/recipebox/pkg/httpx"
	"github.com/aussiebroadwan/recipebox/pkg/jwtx"
	"github.com/aussiebroadwan/recipebox/pkg/slogx"

	_ "github.com/aussiebroadwan/recipebox/api/recipebox" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Limits are the rate limit profiles the router applies.
type Limits struct {
	Strict  httpx.RateLimitConfig
	Lenient httpx.RateLimitConfig
}

// DefaultLimits returns the package default profiles.
func DefaultLimits() Limits {
	return Limits{Strict: httpx.StrictLimit, Lenient: httpx.LenientLimit}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	codec        *jwtx.Codec
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	limits       Limits

	store       store.Store
	UserService *service.UserService
}

func NewRouter(
	codec *jwtx.Codec,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	limits Limits,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		codec:        codec,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
		limits:       limits,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Recipebox Users API
//	@version		0.1.0
//	@description	Stateless authentication for the recipebox app. Login issues an HS256 signed JWT valid for one week;
//	@description	authenticated routes take it back as "Authorization: Bearer {token}".
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/recipebox
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT from /api/users/login. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// Public
	r.Mux.Handle("GET /api/users/test",
		httpx.Chain(http.HandlerFunc(h.HandleTest),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	// Anonymous or signed in; a token, if sent, must be valid
	r.Mux.Handle("GET /api/users/all",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.OptionalAuth(r.codec),
			httpx.RateLimitBySubject(r.limits.Lenient),
		),
	)

	// Credential endpoints - strict rate limit by IP (brute force, signup spam)
	r.Mux.Handle("POST /api/users/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
	r.Mux.Handle("POST /api/users/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)

	// Authenticated - lenient rate limit by user
	r.Mux.Handle("GET /api/users/current",
		httpx.Chain(http.HandlerFunc(h.HandleCurrent),
			httpx.RequireAuth(r.codec),
			httpx.RateLimitBySubject(r.limits.Lenient),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.codec),
			httpx.RateLimitByIP(r.limits.Lenient),
		),
	)
}
