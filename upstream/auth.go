package upstream

import (
	"net/url"
	"strings"
)

// LoginURL builds the identity provider login redirect:
// <base>/oauth/login?redirectUrl=<returnTo>. The identity provider sends the
// browser back to returnTo with a one-time token once login completes.
func LoginURL(base, returnTo string) string {
	q := url.Values{}
	q.Set("redirectUrl", returnTo)
	return strings.TrimRight(base, "/") + "/oauth/login?" + q.Encode()
}
