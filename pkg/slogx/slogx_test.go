package slogx_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/recipebox/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, slogx.ParseLevel(in), in)
	}
}

func TestFromContext_DefaultsOutsideRequest(t *testing.T) {
	require.Equal(t, slog.Default(), slogx.FromContext(context.Background()))
}

func TestHTTPMiddleware(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := slogx.New(slogx.Config{Service: "test", Format: "json", Level: "debug", Output: &buf})

	var sawLogger bool
	h := slogx.HTTPMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = slogx.FromContext(r.Context()) != slog.Default()
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/users/test", nil)
	req.Header.Set(slogx.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.True(t, sawLogger)
	require.Equal(t, "req-123", rec.Header().Get(slogx.RequestIDHeader))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "http_request", entry["msg"])
	require.Equal(t, "WARN", entry["level"])
	require.Equal(t, "req-123", entry["req_id"])
	require.Equal(t, "/api/users/test", entry["path"])
	require.EqualValues(t, http.StatusTeapot, entry["status"])
	require.EqualValues(t, len("short and stout"), entry["bytes"])
}

func TestHTTPMiddleware_GeneratesRequestID(t *testing.T) {
	h := slogx.HTTPMiddleware(slogx.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, rec.Header().Get(slogx.RequestIDHeader), 26)
}
