package urlutil

import (
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFullRequestURL(t *testing.T) {
	r := httptest.NewRequest("GET", "http://host/admin?x=1", nil)
	if got := FullRequestURL(r); got != "http://host/admin?x=1" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestFullRequestURLForwardedProto(t *testing.T) {
	r := httptest.NewRequest("GET", "http://host/admin", nil)
	r.Header.Set("X-Forwarded-Proto", "https")
	if got := FullRequestURL(r); got != "https://host/admin" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestStripQueryParamRemovesOnlyTarget(t *testing.T) {
	r := httptest.NewRequest("GET", "http://host/admin?jwt=abc123&tab=ideas", nil)

	got := StripQueryParam(r, "jwt")
	if strings.Contains(got, "jwt") {
		t.Fatalf("token must be stripped, got %q", got)
	}
	if !strings.HasPrefix(got, "/admin") || !strings.Contains(got, "tab=ideas") {
		t.Fatalf("other params must survive, got %q", got)
	}
}

func TestStripQueryParamLastParam(t *testing.T) {
	r := httptest.NewRequest("GET", "http://host/admin?jwt=abc123", nil)
	if got := StripQueryParam(r, "jwt"); got != "/admin" {
		t.Fatalf("expected bare path, got %q", got)
	}
}
