package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/openstead/siteadmin/session"
	"github.com/openstead/siteadmin/upstream"
)

// WithUser resolves the caller through the user directory with the session
// credential and attaches the result to the request context. Runs strictly
// after [RequireAuthenticated], so the directory is never called for
// anonymous requests.
//
// An upstream failure is terminal for the request; nothing partial is ever
// attached or cached.
func WithUser(users *upstream.UserService, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := SessionFromContext(r.Context())

			user, err := users.Me(r.Context(), sess.Token)
			if err != nil {
				log.Error().Err(err).Msg("user lookup failed")
				errorJSON(w, http.StatusInternalServerError, "could not resolve user")
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

// WithSite resolves the site named by the siteID route parameter and
// attaches it to the request context.
//
// Unlike the other enrichers, a failed site lookup bounces the browser back
// to the page it came from (or to fallbackURL) with an error flash, so staff
// land somewhere usable instead of on a bare error body.
func WithSite(sites *upstream.SiteService, store session.Store, fallbackURL string, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := SessionFromContext(r.Context())
			siteID := chi.URLParam(r, "siteID")

			site, err := sites.Get(r.Context(), sess.Token, siteID)
			if err != nil {
				log.Error().Err(err).Str("site-id", siteID).Msg("site lookup failed")
				sess.AddFlash("error", "could not resolve site")
				if err := store.Save(r.Context(), sess); err != nil {
					log.Error().Err(err).Msg("flash save failed")
				}
				RedirectBack(w, r, fallbackURL)
				return
			}

			next.ServeHTTP(w, r.WithContext(withSite(r.Context(), site)))
		})
	}
}

// WithSites resolves every site visible to the credential and attaches the
// list to the request context.
func WithSites(sites *upstream.SiteService, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := SessionFromContext(r.Context())

			all, err := sites.List(r.Context(), sess.Token)
			if err != nil {
				log.Error().Err(err).Msg("site list failed")
				errorJSON(w, http.StatusInternalServerError, "could not resolve sites")
				return
			}

			next.ServeHTTP(w, r.WithContext(withSites(r.Context(), all)))
		})
	}
}
