package middleware

import (
	"net/http"

	"github.com/openstead/siteadmin/internal/urlutil"
	"github.com/openstead/siteadmin/upstream"
)

// RequireAuthenticated redirects requests without a session credential to
// the identity provider's login endpoint, carrying the fully qualified
// original URL so the provider can send the browser back after login.
func RequireAuthenticated(authBase string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, _ := SessionFromContext(r.Context())
			if !sess.Authenticated() {
				http.Redirect(w, r, upstream.LoginURL(authBase, urlutil.FullRequestURL(r)), http.StatusFound)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects authenticated callers whose resolved role does not
// match. This is a hard permission denial, not a login problem, so it
// answers with a body rather than a redirect.
//
// The status is 500, matching what the upstream admin stack has always
// returned for a rights failure; clients depend on it.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user.Role != role {
				errorJSON(w, http.StatusInternalServerError, "account has no rights")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
