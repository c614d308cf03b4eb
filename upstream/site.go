package upstream

import (
	"context"
	"net/http"
	"net/url"
)

// Site is a tenant-managed website record as the site API reports it.
// Config is passed through untouched; this backend never interprets it.
type Site struct {
	ID     int            `json:"id"`
	Domain string         `json:"domain"`
	Name   string         `json:"name"`
	Title  string         `json:"title"`
	Config map[string]any `json:"config,omitempty"`
}

// SiteParams is the writable subset of a site record.
type SiteParams struct {
	Domain string         `json:"domain,omitempty"`
	Name   string         `json:"name,omitempty"`
	Title  string         `json:"title,omitempty"`
	Config map[string]any `json:"config,omitempty"`
}

// SiteService proxies the upstream site API.
type SiteService struct {
	c *Client
}

// NewSiteService wraps a [Client] pointed at the site API base URL.
func NewSiteService(c *Client) *SiteService {
	return &SiteService{c: c}
}

// Get fetches one site by ID.
func (s *SiteService) Get(ctx context.Context, token, siteID string) (*Site, error) {
	var site Site
	if err := s.c.do(ctx, http.MethodGet, "/api/site/"+url.PathEscape(siteID), token, nil, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

// List fetches all sites visible to the credential.
func (s *SiteService) List(ctx context.Context, token string) ([]Site, error) {
	var sites []Site
	if err := s.c.do(ctx, http.MethodGet, "/api/site", token, nil, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

// Create registers a new site.
func (s *SiteService) Create(ctx context.Context, token string, params SiteParams) (*Site, error) {
	var site Site
	if err := s.c.do(ctx, http.MethodPost, "/api/site", token, params, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

// Update modifies an existing site.
func (s *SiteService) Update(ctx context.Context, token, siteID string, params SiteParams) (*Site, error) {
	var site Site
	if err := s.c.do(ctx, http.MethodPut, "/api/site/"+url.PathEscape(siteID), token, params, &site); err != nil {
		return nil, err
	}
	return &site, nil
}

// Delete removes a site.
func (s *SiteService) Delete(ctx context.Context, token, siteID string) error {
	return s.c.do(ctx, http.MethodDelete, "/api/site/"+url.PathEscape(siteID), token, nil, nil)
}
