package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/openstead/siteadmin/session"
	"github.com/openstead/siteadmin/upstream"
)

func upstreamServer(t *testing.T, handler http.HandlerFunc) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return upstream.NewClient(srv.URL, 10*time.Second, zerolog.Nop())
}

func authedRequest(target string) *http.Request {
	sess := session.New(time.Hour)
	sess.Token = "tok-1"
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(WithSession(req.Context(), sess))
}

func TestWithUserAttachesIdentity(t *testing.T) {
	var gotAuth string
	c := upstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("X-Authorization")
		json.NewEncoder(w).Encode(upstream.User{ID: 1, Email: "demo@demo.nl", Role: "admin"})
	})

	var captured *upstream.User
	h := WithUser(upstream.NewUserService(c), zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = UserFromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), authedRequest("http://host/admin"))

	if gotAuth != "Bearer tok-1" {
		t.Fatalf("expected session credential forwarded, got %q", gotAuth)
	}
	if captured == nil || captured.Role != "admin" {
		t.Fatalf("expected user in context, got %+v", captured)
	}
}

func TestWithUserUpstreamFailureIsTerminal(t *testing.T) {
	c := upstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	h := WithUser(upstream.NewUserService(c), zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run on enrichment failure")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, authedRequest("http://host/admin"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestWithSiteResolvesRouteParam(t *testing.T) {
	var gotPath string
	c := upstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(upstream.Site{ID: 42, Name: "demo"})
	})
	store := session.NewMemoryStore(time.Hour)

	var captured *upstream.Site
	r := chi.NewRouter()
	r.With(WithSite(upstream.NewSiteService(c), store, "http://app", zerolog.Nop())).
		Get("/admin/site/{siteID}", func(w http.ResponseWriter, r *http.Request) {
			captured, _ = SiteFromContext(r.Context())
		})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest("http://host/admin/site/42"))

	if gotPath != "/api/site/42" {
		t.Fatalf("expected site fetch for id 42, got %s", gotPath)
	}
	if captured == nil || captured.ID != 42 {
		t.Fatalf("expected site in context, got %+v", captured)
	}
}

func TestWithSiteFailureRedirectsBack(t *testing.T) {
	c := upstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	store := session.NewMemoryStore(time.Hour)

	r := chi.NewRouter()
	r.With(WithSite(upstream.NewSiteService(c), store, "http://app", zerolog.Nop())).
		Get("/admin/site/{siteID}", func(w http.ResponseWriter, r *http.Request) {
			t.Fatalf("handler must not run on site lookup failure")
		})

	// With a Referer the browser goes back where it came from.
	req := authedRequest("http://host/admin/site/42")
	req.Header.Set("Referer", "http://host/admin")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "http://host/admin" {
		t.Fatalf("expected Referer redirect, got %q", loc)
	}

	// Without a Referer it falls back to the configured app URL.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, authedRequest("http://host/admin/site/42"))
	if loc := rec.Header().Get("Location"); loc != "http://app" {
		t.Fatalf("expected fallback redirect, got %q", loc)
	}
}

func TestWithSitesAttachesList(t *testing.T) {
	c := upstreamServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]upstream.Site{{ID: 1}, {ID: 2}})
	})

	var captured []upstream.Site
	h := WithSites(upstream.NewSiteService(c), zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = SitesFromContext(r.Context())
	}))

	h.ServeHTTP(httptest.NewRecorder(), authedRequest("http://host/admin"))

	if len(captured) != 2 {
		t.Fatalf("expected 2 sites in context, got %d", len(captured))
	}
}
