package upstream

import (
	"context"
	"net/http"
	"net/url"
)

// User is a staff identity as the user directory reports it. Role drives the
// access control filter; everything else is display data.
type User struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// UserParams is the writable subset of a user record.
type UserParams struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role,omitempty"`
}

// UserService proxies the upstream user directory.
type UserService struct {
	c *Client
}

// NewUserService wraps a [Client] pointed at the user API base URL.
func NewUserService(c *Client) *UserService {
	return &UserService{c: c}
}

// Me resolves the identity behind the credential.
func (s *UserService) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := s.c.do(ctx, http.MethodGet, "/api/user/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// List fetches all users visible to the credential.
func (s *UserService) List(ctx context.Context, token string) ([]User, error) {
	var users []User
	if err := s.c.do(ctx, http.MethodGet, "/api/user", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Get fetches one user by ID.
func (s *UserService) Get(ctx context.Context, token, userID string) (*User, error) {
	var user User
	if err := s.c.do(ctx, http.MethodGet, "/api/user/"+url.PathEscape(userID), token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create registers a user.
func (s *UserService) Create(ctx context.Context, token string, params UserParams) (*User, error) {
	var user User
	if err := s.c.do(ctx, http.MethodPost, "/api/user", token, params, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update modifies a user.
func (s *UserService) Update(ctx context.Context, token, userID string, params UserParams) (*User, error) {
	var user User
	if err := s.c.do(ctx, http.MethodPut, "/api/user/"+url.PathEscape(userID), token, params, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, token, userID string) error {
	return s.c.do(ctx, http.MethodDelete, "/api/user/"+url.PathEscape(userID), token, nil, nil)
}
