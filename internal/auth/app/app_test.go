package app

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/recipebox/pkg/cryptox"
	"github.com/aussiebroadwan/recipebox/pkg/httpx"
	"github.com/aussiebroadwan/recipebox/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testSecret = "app-test-secret-0123456789abcdefgh"

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"JWT_SECRET", "JWT_SECRET_FILE", "JWT_ISSUER", "TOKEN_TTL",
		"PASSWORD_ALGORITHM", "PASSWORD_BCRYPT_COST", "PASSWORD_HASH_CONCURRENCY",
		"DATABASE_FILE", "ENV", "LOG_LEVEL", "LOG_FORMAT", "PORT", "SHUTDOWN_GRACE_PERIOD",
		"RATELIMIT_STRICT_REQUESTS", "RATELIMIT_STRICT_WINDOW_SEC", "RATELIMIT_STRICT_BURST",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "jwt_secret", cfg.JWTSecretFile)
	require.Equal(t, jwtx.DefaultTokenTTL, cfg.TokenTTL)
	require.Equal(t, cryptox.AlgorithmBcrypt, cfg.PasswordAlgorithm)
	require.Equal(t, cryptox.DefaultBcryptCost, cfg.PasswordBcryptCost)
	require.Equal(t, "recipebox.db", cfg.DatabaseFile)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, httpx.StrictLimit, cfg.StrictLimit)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("TOKEN_TTL", "3600")
	t.Setenv("SHUTDOWN_GRACE_PERIOD", "30s")
	t.Setenv("PORT", "9090")
	t.Setenv("PASSWORD_ALGORITHM", "argon2id")
	t.Setenv("PASSWORD_BCRYPT_COST", "not-a-number")
	t.Setenv("RATELIMIT_STRICT_BURST", "50")

	cfg := LoadConfig()
	require.Equal(t, time.Hour, cfg.TokenTTL)
	require.Equal(t, 30*time.Second, cfg.ShutdownGracePeriod)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "argon2id", cfg.PasswordAlgorithm)
	require.Equal(t, cryptox.DefaultBcryptCost, cfg.PasswordBcryptCost)
	require.Equal(t, 50, cfg.StrictLimit.Burst)
	require.Equal(t, httpx.StrictLimit.RequestsPerWindow, cfg.StrictLimit.RequestsPerWindow)
}

func TestConfigSecret(t *testing.T) {
	t.Run("inline secret wins", func(t *testing.T) {
		cfg := Config{JWTSecret: testSecret, JWTSecretFile: filepath.Join(t.TempDir(), "unused")}
		secret, err := cfg.Secret()
		require.NoError(t, err)
		require.Equal(t, testSecret, string(secret))
	})

	t.Run("inline secret too short", func(t *testing.T) {
		_, err := Config{JWTSecret: "short"}.Secret()
		require.ErrorIs(t, err, cryptox.ErrSecretTooShort)
	})

	t.Run("file is generated once", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "keys", "jwt_secret")
		cfg := Config{JWTSecretFile: file}

		first, err := cfg.Secret()
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(first), cryptox.MinSecretLength)

		second, err := cfg.Secret()
		require.NoError(t, err)
		require.Equal(t, first, second)

		info, err := os.Stat(file)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}

func TestNew_ServesRoutes(t *testing.T) {
	var logs bytes.Buffer
	application, err := New(Config{
		LogOutput:           &logs,
		JWTSecret:           testSecret,
		TokenTTL:            time.Hour,
		PasswordAlgorithm:   cryptox.AlgorithmBcrypt,
		PasswordBcryptCost:  4,
		DatabaseFile:        ":memory:",
		Env:                 "test",
		LogLevel:            "info",
		LogFormat:           "text",
		Port:                0,
		ShutdownGracePeriod: time.Second,
		StrictLimit:         httpx.StrictLimit,
		LenientLimit:        httpx.LenientLimit,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })
	require.Contains(t, logs.String(), "no accounts yet")

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(srv.URL+"/api/users/register", "application/json",
		strings.NewReader(`{"name":"Ann","email":"ann@example.com","password":"secret123"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNew_RejectsUnknownHasher(t *testing.T) {
	_, err := New(Config{
		JWTSecret:         testSecret,
		PasswordAlgorithm: "md5",
		DatabaseFile:      ":memory:",
		LogLevel:          "error",
	})
	require.Error(t, err)
}
