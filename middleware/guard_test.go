package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/openstead/siteadmin/session"
	"github.com/openstead/siteadmin/upstream"
)

func TestRequireAuthenticatedRedirectsToLogin(t *testing.T) {
	h := RequireAuthenticated("https://api.example.org")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run for anonymous request")
	}))

	sess := session.New(time.Hour) // no credential
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, gateRequest("http://host/admin", sess))

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}

	loc, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if loc.Host != "api.example.org" || loc.Path != "/oauth/login" {
		t.Fatalf("expected IdP login redirect, got %v", loc)
	}
	if ret := loc.Query().Get("redirectUrl"); ret != "http://host/admin" {
		t.Fatalf("expected original URL as return target, got %q", ret)
	}
}

func TestRequireAuthenticatedPassesWithCredential(t *testing.T) {
	var ran bool
	h := RequireAuthenticated("https://api.example.org")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	sess := session.New(time.Hour)
	sess.Token = "tok-1"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, gateRequest("http://host/admin", sess))

	if !ran {
		t.Fatalf("expected pass-through for authenticated session")
	}
}

func TestRequireRoleDeniesWithoutRedirect(t *testing.T) {
	h := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run for a member")
	}))

	req := httptest.NewRequest(http.MethodGet, "http://host/admin", nil)
	req = req.WithContext(withUser(req.Context(), &upstream.User{Role: "member"}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected denial status, got %d", rec.Code)
	}
	if rec.Header().Get("Location") != "" {
		t.Fatalf("denial must not redirect")
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Fatalf("expected JSON error body, got %s", rec.Body.String())
	}
}

func TestRequireRoleDeniesWithoutResolvedUser(t *testing.T) {
	h := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run without a resolved user")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://host/admin", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected denial status, got %d", rec.Code)
	}
}

func TestRequireRolePassesAdmin(t *testing.T) {
	var ran bool
	h := RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ran = true
	}))

	req := httptest.NewRequest(http.MethodGet, "http://host/admin", nil)
	req = req.WithContext(withUser(req.Context(), &upstream.User{Role: "admin"}))
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !ran {
		t.Fatalf("expected pass-through for admin")
	}
}
