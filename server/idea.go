package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openstead/siteadmin/middleware"
	"github.com/openstead/siteadmin/session"
	"github.com/openstead/siteadmin/upstream"
)

// ideaParamsFromForm applies the field whitelist: only these six fields ever
// travel upstream, regardless of what the form submits.
func ideaParamsFromForm(r *http.Request) upstream.IdeaParams {
	return upstream.IdeaParams{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Summary:     r.PostFormValue("summary"),
		Location:    r.PostFormValue("location"),
		Thema:       r.PostFormValue("thema"),
		Status:      r.PostFormValue("status"),
	}
}

func (s *Server) handleIdeas(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")

	ideas, err := s.ideas.List(r.Context(), token(r), siteID)
	if err != nil {
		s.log.Error().Err(err).Str("site-id", siteID).Msg("idea list failed")
		renderError(w, http.StatusInternalServerError, "could not load ideas")
		return
	}

	renderJSON(w, http.StatusOK, struct {
		Site    *upstream.Site  `json:"site"`
		Ideas   []upstream.Idea `json:"ideas"`
		Flashes []session.Flash `json:"flashes,omitempty"`
	}{Site: siteFrom(r), Ideas: ideas, Flashes: s.drainFlashes(r)})
}

func (s *Server) handleIdeaDetail(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")
	ideaID := chi.URLParam(r, "ideaID")

	idea, err := s.ideas.Get(r.Context(), token(r), siteID, ideaID)
	if err != nil {
		s.log.Error().Err(err).Str("site-id", siteID).Str("idea-id", ideaID).Msg("idea fetch failed")
		renderError(w, http.StatusInternalServerError, "could not load idea")
		return
	}

	renderJSON(w, http.StatusOK, struct {
		Site    *upstream.Site  `json:"site"`
		Idea    *upstream.Idea  `json:"idea"`
		Flashes []session.Flash `json:"flashes,omitempty"`
	}{Site: siteFrom(r), Idea: idea, Flashes: s.drainFlashes(r)})
}

func (s *Server) handleIdeaCreate(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")

	if _, err := s.ideas.Create(r.Context(), token(r), siteID, ideaParamsFromForm(r)); err != nil {
		s.log.Error().Err(err).Str("site-id", siteID).Msg("idea create failed")
		s.flash(r, "error", "could not create idea")
		middleware.RedirectBack(w, r, s.cfg.Server.AppURL)
		return
	}

	s.flash(r, "success", "idea created")
	http.Redirect(w, r, "/admin/site/"+siteID+"/ideas", http.StatusFound)
}

func (s *Server) handleIdeaUpdate(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")
	ideaID := chi.URLParam(r, "ideaID")

	if _, err := s.ideas.Update(r.Context(), token(r), siteID, ideaID, ideaParamsFromForm(r)); err != nil {
		s.log.Error().Err(err).Str("site-id", siteID).Str("idea-id", ideaID).Msg("idea update failed")
		s.flash(r, "error", "could not save idea")
		middleware.RedirectBack(w, r, s.cfg.Server.AppURL)
		return
	}

	middleware.RedirectBack(w, r, s.cfg.Server.AppURL)
}

func (s *Server) handleIdeaDelete(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")
	ideaID := chi.URLParam(r, "ideaID")

	if err := s.ideas.Delete(r.Context(), token(r), siteID, ideaID); err != nil {
		s.log.Error().Err(err).Str("site-id", siteID).Str("idea-id", ideaID).Msg("idea delete failed")
		middleware.RedirectBack(w, r, s.cfg.Server.AppURL)
		return
	}

	http.Redirect(w, r, "/admin/site/"+siteID+"/ideas", http.StatusFound)
}

func siteFrom(r *http.Request) *upstream.Site {
	site, _ := middleware.SiteFromContext(r.Context())
	return site
}
