package server

import (
	"errors"
	"net/http"

	"github.com/openstead/siteadmin/middleware"
	"github.com/openstead/siteadmin/session"
	"github.com/openstead/siteadmin/upstream"
)

// handleIndex sends staff straight to the admin section.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		w.Write([]byte(http.StatusText(http.StatusOK)))
	}
}

// handleOAuthLogin starts the login round-trip: the identity provider sends
// the browser back to /admin with a one-time token for the gate to consume.
func (s *Server) handleOAuthLogin(w http.ResponseWriter, r *http.Request) {
	returnTo := s.cfg.Server.AppURL + "/admin"
	http.Redirect(w, r, upstream.LoginURL(s.cfg.Upstream.APIBaseURL, returnTo), http.StatusFound)
}

// handleLogout destroys the session record, expires the cookie, and sends
// the browser home. Logging out twice is a no-op, not an error.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if ok {
		if err := s.store.Destroy(r.Context(), sess.ID); err != nil && !errors.Is(err, session.ErrNotFound) {
			s.log.Error().Err(err).Msg("session destroy failed")
			renderError(w, http.StatusInternalServerError, "could not log out")
			return
		}
	}
	s.codec.Clear(w)
	http.Redirect(w, r, "/", http.StatusFound)
}
