package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/recipebox/pkg/cryptox"
	"github.com/aussiebroadwan/recipebox/pkg/httpx"
	"github.com/aussiebroadwan/recipebox/pkg/jwtx"
	"github.com/joho/godotenv"
)

type Config struct {
	JWTSecret     string        // Optional: inline signing secret, wins over JWTSecretFile
	JWTSecretFile string        // Optional: path to the signing secret, generated if missing (default: ./jwt_secret)
	JWTIssuer     string        // Optional: iss claim stamped on and required from tokens
	TokenTTL      time.Duration // Optional: token lifetime (default: 168h)

	PasswordAlgorithm       string // Optional: bcrypt or argon2id (default: bcrypt)
	PasswordBcryptCost      int    // Optional: bcrypt work factor (default: 10)
	PasswordHashConcurrency int    // Optional: concurrent hash operations (default: NumCPU)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./recipebox.db)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	LogOutput           io.Writer     // Log destination (default: stdout)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)

	StrictLimit  httpx.RateLimitConfig // RATELIMIT_STRICT_* overrides
	LenientLimit httpx.RateLimitConfig // RATELIMIT_LENIENT_* overrides
}

// LoadConfig reads the configuration from the environment. A .env file in
// the working directory, if present, is loaded first; variables already set
// in the environment win over it.
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "ignoring .env: %v\n", err)
	}

	return Config{
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTSecretFile: getEnvOrDefault("JWT_SECRET_FILE", "jwt_secret"),
		JWTIssuer:     os.Getenv("JWT_ISSUER"),
		TokenTTL:      getEnvDurationOrDefault("TOKEN_TTL", jwtx.DefaultTokenTTL),

		PasswordAlgorithm:       getEnvOrDefault("PASSWORD_ALGORITHM", cryptox.AlgorithmBcrypt),
		PasswordBcryptCost:      getEnvIntOrDefault("PASSWORD_BCRYPT_COST", cryptox.DefaultBcryptCost),
		PasswordHashConcurrency: getEnvIntOrDefault("PASSWORD_HASH_CONCURRENCY", 0),

		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "recipebox.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),

		StrictLimit:  httpx.RateLimitFromEnv("strict", httpx.StrictLimit),
		LenientLimit: httpx.RateLimitFromEnv("lenient", httpx.LenientLimit),
	}
}

// Secret returns the signing secret: JWTSecret when set, otherwise the
// contents of JWTSecretFile, which is created on first start.
func (c Config) Secret() ([]byte, error) {
	if c.JWTSecret != "" {
		if len(c.JWTSecret) < cryptox.MinSecretLength {
			return nil, cryptox.ErrSecretTooShort
		}
		return []byte(c.JWTSecret), nil
	}
	return cryptox.LoadOrCreateSecret(c.JWTSecretFile)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds (e.g., "604800")
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
