package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/openstead/siteadmin/session"
)

// Restore loads the session behind the signed cookie and attaches it to the
// request context. Requests without a valid cookie get a fresh session,
// persisted immediately so the cookie can be issued on this response.
//
// A store outage is terminal for the request: handlers cannot run without a
// session, so the pipeline answers 500 instead of continuing credential-less.
func Restore(store session.Store, codec *session.CookieCodec, ttl time.Duration, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, fresh, err := loadOrCreate(store, codec, ttl, r)
			if err != nil {
				log.Error().Err(err).Msg("session restore failed")
				errorJSON(w, http.StatusInternalServerError, "session unavailable")
				return
			}

			if fresh {
				if err := codec.WriteID(w, sess.ID); err != nil {
					log.Error().Err(err).Msg("session cookie write failed")
					errorJSON(w, http.StatusInternalServerError, "session unavailable")
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
		})
	}
}

func loadOrCreate(store session.Store, codec *session.CookieCodec, ttl time.Duration, r *http.Request) (*session.Session, bool, error) {
	if id, ok := codec.ReadID(r); ok {
		sess, err := store.Load(r.Context(), id)
		if err == nil {
			return sess, false, nil
		}
		if !errors.Is(err, session.ErrNotFound) {
			return nil, false, err
		}
		// Cookie references a destroyed or expired record; fall through and mint.
	}

	sess := session.New(ttl)
	if err := store.Save(r.Context(), sess); err != nil {
		return nil, false, err
	}
	return sess, true, nil
}
