package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/openstead/siteadmin/internal/urlutil"
	"github.com/openstead/siteadmin/session"
)

// tokenParam is the query parameter the identity provider appends to the
// return URL after a successful login.
const tokenParam = "jwt"

// Gate consumes a one-time token delivered via the ?jwt= query parameter.
//
// When a token is present it is installed as the session credential and the
// session is persisted before anything is written to the client; only then
// does the gate answer with a redirect to the same path with the token
// stripped, so the raw token never reaches browser history or a Referer
// header. The next handler is never invoked on a token-bearing request.
//
// A failed save aborts with a 500 instead of redirecting: redirecting first
// would race the follow-up request against an unpersisted credential.
//
// Requests without a token pass straight through; authentication is derived
// from the session by the guards downstream.
func Gate(store session.Store, ttl time.Duration, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.URL.Query().Get(tokenParam)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, ok := SessionFromContext(r.Context())
			if !ok {
				errorJSON(w, http.StatusInternalServerError, "session unavailable")
				return
			}

			warnIfStale(token, log)

			sess.Token = token
			sess.Touch(ttl)
			if err := store.Save(r.Context(), sess); err != nil {
				log.Error().Err(err).Msg("credential save failed")
				errorJSON(w, http.StatusInternalServerError, "could not persist session")
				return
			}

			http.Redirect(w, r, urlutil.StripQueryParam(r, tokenParam), http.StatusFound)
		})
	}
}

// warnIfStale peeks at the token's claims without verifying the signature.
// The token stays opaque for every decision; this exists only to make an
// expired or garbled token visible in the logs before the upstream services
// start rejecting it.
func warnIfStale(token string, log zerolog.Logger) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		log.Warn().Err(err).Msg("one-time token does not parse as a JWT")
		return
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return
	}
	if exp.Before(time.Now()) {
		log.Warn().Time("expired-at", exp.Time).Msg("one-time token already expired")
	}
}
