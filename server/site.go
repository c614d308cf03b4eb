package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/openstead/siteadmin/middleware"
	"github.com/openstead/siteadmin/session"
	"github.com/openstead/siteadmin/upstream"
)

// handleSites answers the admin overview with every site visible to the
// credential, plus any queued flash messages.
func (s *Server) handleSites(w http.ResponseWriter, r *http.Request) {
	sites, _ := middleware.SitesFromContext(r.Context())

	renderJSON(w, http.StatusOK, struct {
		Sites   []upstream.Site `json:"sites"`
		Flashes []session.Flash `json:"flashes,omitempty"`
	}{Sites: sites, Flashes: s.drainFlashes(r)})
}

func (s *Server) handleSiteDetail(w http.ResponseWriter, r *http.Request) {
	site, _ := middleware.SiteFromContext(r.Context())

	renderJSON(w, http.StatusOK, struct {
		Site    *upstream.Site  `json:"site"`
		Flashes []session.Flash `json:"flashes,omitempty"`
	}{Site: site, Flashes: s.drainFlashes(r)})
}

// siteParamsFromForm picks the writable site fields out of a submitted form.
func siteParamsFromForm(r *http.Request) upstream.SiteParams {
	return upstream.SiteParams{
		Domain: r.PostFormValue("domain"),
		Name:   r.PostFormValue("name"),
		Title:  r.PostFormValue("title"),
	}
}

func (s *Server) handleSiteCreate(w http.ResponseWriter, r *http.Request) {
	params := siteParamsFromForm(r)
	if params.Title == "" {
		params.Title = params.Name
	}

	site, err := s.sites.Create(r.Context(), token(r), params)
	if err != nil {
		s.log.Error().Err(err).Msg("site create failed")
		s.flash(r, "error", "could not create site")
		middleware.RedirectBack(w, r, s.cfg.Server.AppURL)
		return
	}

	s.flash(r, "success", "site created")
	http.Redirect(w, r, "/admin/site/"+strconv.Itoa(site.ID), http.StatusFound)
}

func (s *Server) handleSiteUpdate(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")

	if _, err := s.sites.Update(r.Context(), token(r), siteID, siteParamsFromForm(r)); err != nil {
		s.log.Error().Err(err).Str("site-id", siteID).Msg("site update failed")
		s.flash(r, "error", "could not save site")
		middleware.RedirectBack(w, r, s.cfg.Server.AppURL)
		return
	}

	s.flash(r, "success", "site saved")
	http.Redirect(w, r, "/admin/site/"+siteID, http.StatusFound)
}

func (s *Server) handleSiteDelete(w http.ResponseWriter, r *http.Request) {
	siteID := chi.URLParam(r, "siteID")

	if err := s.sites.Delete(r.Context(), token(r), siteID); err != nil {
		s.log.Error().Err(err).Str("site-id", siteID).Msg("site delete failed")
		s.flash(r, "error", "could not delete site")
		middleware.RedirectBack(w, r, s.cfg.Server.AppURL)
		return
	}

	s.flash(r, "success", "site deleted")
	http.Redirect(w, r, "/admin", http.StatusFound)
}
