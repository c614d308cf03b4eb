package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openstead/siteadmin/middleware"
	"github.com/openstead/siteadmin/upstream"
)

// handleUsers backs both the overview page and the AJAX proxy route with the
// same user-directory listing.
func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context(), token(r))
	if err != nil {
		s.log.Error().Err(err).Msg("user list failed")
		renderError(w, http.StatusInternalServerError, "could not load users")
		return
	}

	renderJSON(w, http.StatusOK, struct {
		Users []upstream.User `json:"users"`
	}{Users: users})
}

func (s *Server) handleUserDetail(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	user, err := s.users.Get(r.Context(), token(r), userID)
	if err != nil {
		s.log.Error().Err(err).Str("user-id", userID).Msg("user fetch failed")
		renderError(w, http.StatusInternalServerError, "could not load user")
		return
	}

	renderJSON(w, http.StatusOK, struct {
		User *upstream.User `json:"user"`
	}{User: user})
}

func userParamsFromForm(r *http.Request) upstream.UserParams {
	return upstream.UserParams{
		Email:     r.PostFormValue("email"),
		FirstName: r.PostFormValue("firstName"),
		LastName:  r.PostFormValue("lastName"),
		Role:      r.PostFormValue("role"),
	}
}

func (s *Server) handleUserCreate(w http.ResponseWriter, r *http.Request) {
	if _, err := s.users.Create(r.Context(), token(r), userParamsFromForm(r)); err != nil {
		s.log.Error().Err(err).Msg("user create failed")
		s.flash(r, "error", "could not create user")
		middleware.RedirectBack(w, r, s.cfg.Server.AppURL)
		return
	}

	s.flash(r, "success", "user created")
	http.Redirect(w, r, "/admin/users", http.StatusFound)
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if _, err := s.users.Update(r.Context(), token(r), userID, userParamsFromForm(r)); err != nil {
		s.log.Error().Err(err).Str("user-id", userID).Msg("user update failed")
		s.flash(r, "error", "could not save user")
	} else {
		s.flash(r, "success", "user saved")
	}

	http.Redirect(w, r, "/admin/user/"+userID, http.StatusFound)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if err := s.users.Delete(r.Context(), token(r), userID); err != nil {
		s.log.Error().Err(err).Str("user-id", userID).Msg("user delete failed")
		s.flash(r, "error", "could not delete user")
	} else {
		s.flash(r, "success", "user deleted")
	}

	http.Redirect(w, r, "/admin/users", http.StatusFound)
}
