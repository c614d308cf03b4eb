// Package urlutil has small helpers for reconstructing request URLs and
// scrubbing query parameters. Shared by the middleware and server packages.
package urlutil

import (
	"net/http"
	"net/url"
)

// FullRequestURL reconstructs the fully qualified URL the client requested,
// honoring X-Forwarded-Proto when the service runs behind a proxy.
func FullRequestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
	}
	return u.String()
}

// StripQueryParam returns the request's path plus query string with the named
// parameter removed. The result is relative, suitable as a redirect Location
// on the same host.
func StripQueryParam(r *http.Request, name string) string {
	q := r.URL.Query()
	q.Del(name)

	u := url.URL{
		Path:     r.URL.Path,
		RawQuery: q.Encode(),
	}
	return u.String()
}
