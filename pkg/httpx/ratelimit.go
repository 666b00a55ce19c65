package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/recipebox/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines the rate limiting parameters.
type RateLimitConfig struct {
	// RequestsPerWindow is the number of requests allowed in the time window
	RequestsPerWindow int
	// Window is the time window for rate limiting
	Window time.Duration
	// Burst allows for temporary bursts above the rate limit
	Burst int
}

// Default profiles. The app overrides them from RATELIMIT_<NAME>_* at start.
var (
	// StrictLimit guards register and login against credential stuffing.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 5}

	// LenientLimit covers everything else.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 120, Window: time.Minute, Burst: 60}
)

// RateLimitFromEnv overlays RATELIMIT_{name}_REQUESTS, _WINDOW_SEC and
// _BURST onto def. Unset or non-positive values keep the default.
func RateLimitFromEnv(name string, def RateLimitConfig) RateLimitConfig {
	cfg := def
	prefix := "RATELIMIT_" + strings.ToUpper(name) + "_"

	if n, ok := positiveEnvInt(prefix + "REQUESTS"); ok {
		cfg.RequestsPerWindow = n
	}
	if n, ok := positiveEnvInt(prefix + "WINDOW_SEC"); ok {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnvInt(prefix + "BURST"); ok {
		cfg.Burst = n
	}
	return cfg
}

func positiveEnvInt(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	return n, err == nil && n > 0
}

// KeyExtractor groups requests into rate limit buckets.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor extracts the client IP address from the request.
// It handles X-Forwarded-For and X-Real-IP headers for proxied requests.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// SubjectOrIPKeyExtractor buckets authenticated callers by user id and
// everyone else by IP.
func SubjectOrIPKeyExtractor(r *http.Request) string {
	if sub, ok := SubjectFromContext(r.Context()); ok {
		return "user:" + sub
	}
	return "ip:" + IPKeyExtractor(r)
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet hands out one token bucket per key and forgets keys that have
// been idle for a while.
type limiterSet struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
}

func newLimiterSet(cfg RateLimitConfig) *limiterSet {
	return &limiterSet{
		visitors:  make(map[string]*visitor),
		limit:     rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:     cfg.Burst,
		idle:      max(cfg.Window, time.Minute) * 3,
		lastSweep: time.Now(),
	}
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) > s.idle {
		for k, v := range s.visitors {
			if now.Sub(v.lastSeen) > s.idle {
				delete(s.visitors, k)
			}
		}
		s.lastSweep = now
	}

	v, ok := s.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// RateLimit rejects requests with 429 once the bucket for their key is
// empty. Requests whose key cannot be determined are let through.
func RateLimit(cfg RateLimitConfig, key KeyExtractor) Middleware {
	set := newLimiterSet(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key(r)
			if k == "" {
				slogx.FromContext(r.Context()).Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			now := time.Now()
			limiter := set.get(k, now)
			if limiter.AllowN(now, 1) {
				next.ServeHTTP(w, r)
				return
			}

			r2 := limiter.ReserveN(now, 1)
			retryAfter := max(int(r2.DelayFrom(now).Seconds()), 1)
			r2.CancelAt(now)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Window", cfg.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", k,
				"endpoint", r.URL.Path,
				"retry_after", retryAfter,
			)
			WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
		})
	}
}

// RateLimitByIP limits by client IP only.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimit(cfg, IPKeyExtractor)
}

// RateLimitBySubject limits authenticated callers per user and anonymous
// callers per IP. Place it after the auth middleware.
func RateLimitBySubject(cfg RateLimitConfig) Middleware {
	return RateLimit(cfg, SubjectOrIPKeyExtractor)
}
