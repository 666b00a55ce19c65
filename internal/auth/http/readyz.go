package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/recipebox/internal/auth/store"
	"github.com/aussiebroadwan/recipebox/pkg/authsdk"
	"github.com/aussiebroadwan/recipebox/pkg/httpx"
	"github.com/aussiebroadwan/recipebox/pkg/jwtx"
	"github.com/aussiebroadwan/recipebox/pkg/slogx"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness check
//	@Description	Pings the database and round-trips a token through the codec
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"one or more checks failed"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store, codec *jwtx.Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := slogx.FromContext(r.Context())

		checks := &authsdk.HealthChecks{Database: "ok", Codec: "ok"}
		status, code := "ok", http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			log.Warn("readiness: database ping failed", "err", err)
			checks.Database = "error"
			status, code = "degraded", http.StatusServiceUnavailable
		}

		if err := codecRoundTrip(codec); err != nil {
			log.Warn("readiness: codec check failed", "err", err)
			checks.Codec = "error"
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, authsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).Round(time.Second).String(),
			Version: version,
			Checks:  checks,
		})
	}
}

func codecRoundTrip(codec *jwtx.Codec) error {
	if codec == nil {
		return jwtx.ErrNoSecret
	}
	tok, _, err := codec.Issue(jwtx.Subject{ID: "readyz"}, time.Minute)
	if err != nil {
		return err
	}
	_, err = codec.Verify(tok)
	return err
}
