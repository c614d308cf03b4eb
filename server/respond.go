package server

import (
	"encoding/json"
	"net/http"

	"github.com/openstead/siteadmin/middleware"
	"github.com/openstead/siteadmin/session"
)

func renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func renderError(w http.ResponseWriter, status int, message string) {
	renderJSON(w, status, map[string]string{"error": message})
}

// flash queues a message on the session and persists it so it survives the
// redirect that follows. A failed save only loses the message, never the
// request, so it is logged and swallowed.
func (s *Server) flash(r *http.Request, kind, message string) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		return
	}
	sess.AddFlash(kind, message)
	if err := s.store.Save(r.Context(), sess); err != nil {
		s.log.Error().Err(err).Msg("flash save failed")
	}
}

// token returns the session credential for the current request.
func token(r *http.Request) string {
	sess, _ := middleware.SessionFromContext(r.Context())
	if sess == nil {
		return ""
	}
	return sess.Token
}

// drainFlashes empties the session's flash queue for inclusion in a JSON
// response, persisting the drained state.
func (s *Server) drainFlashes(r *http.Request) []session.Flash {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		return nil
	}
	flashes := sess.DrainFlashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := s.store.Save(r.Context(), sess); err != nil {
		s.log.Error().Err(err).Msg("flash drain save failed")
	}
	return flashes
}
