package upstream

import (
	"context"
	"net/http"
	"net/url"
)

// Idea is a content item belonging to a site.
type Idea struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Summary     string `json:"summary"`
	Location    string `json:"location,omitempty"`
	Thema       string `json:"thema,omitempty"`
	Status      string `json:"status,omitempty"`
}

// IdeaParams is the whitelisted writable subset of an idea. Only fields that
// were actually submitted are forwarded; empty fields are omitted so the
// upstream API never sees them.
type IdeaParams struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Location    string `json:"location,omitempty"`
	Thema       string `json:"thema,omitempty"`
	Status      string `json:"status,omitempty"`
}

// IdeaService proxies the upstream idea API, which is nested under sites.
type IdeaService struct {
	c *Client
}

// NewIdeaService wraps a [Client] pointed at the site API base URL.
func NewIdeaService(c *Client) *IdeaService {
	return &IdeaService{c: c}
}

func ideaPath(siteID, ideaID string) string {
	p := "/api/site/" + url.PathEscape(siteID) + "/idea"
	if ideaID != "" {
		p += "/" + url.PathEscape(ideaID)
	}
	return p
}

// List fetches all ideas for a site.
func (s *IdeaService) List(ctx context.Context, token, siteID string) ([]Idea, error) {
	var ideas []Idea
	if err := s.c.do(ctx, http.MethodGet, ideaPath(siteID, ""), token, nil, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

// Get fetches one idea for a site.
func (s *IdeaService) Get(ctx context.Context, token, siteID, ideaID string) (*Idea, error) {
	var idea Idea
	if err := s.c.do(ctx, http.MethodGet, ideaPath(siteID, ideaID), token, nil, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

// Create adds an idea to a site.
func (s *IdeaService) Create(ctx context.Context, token, siteID string, params IdeaParams) (*Idea, error) {
	var idea Idea
	if err := s.c.do(ctx, http.MethodPost, ideaPath(siteID, ""), token, params, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

// Update modifies an idea.
func (s *IdeaService) Update(ctx context.Context, token, siteID, ideaID string, params IdeaParams) (*Idea, error) {
	var idea Idea
	if err := s.c.do(ctx, http.MethodPut, ideaPath(siteID, ideaID), token, params, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

// Delete removes an idea.
func (s *IdeaService) Delete(ctx context.Context, token, siteID, ideaID string) error {
	return s.c.do(ctx, http.MethodDelete, ideaPath(siteID, ideaID), token, nil, nil)
}
