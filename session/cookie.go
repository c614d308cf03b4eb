package session

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// CookieCodec reads and writes the signed cookie that carries a session ID.
// Only the ID crosses the wire; session contents never leave the store.
// Tampered or undecodable cookies are treated as absent.
type CookieCodec struct {
	name   string
	ttl    time.Duration
	secure bool
	sc     *securecookie.SecureCookie
}

// NewCookieCodec builds a codec for the named cookie, HMAC-signed with
// secret. ttl becomes the cookie Max-Age; secure toggles the Secure flag for
// deployments behind TLS.
func NewCookieCodec(name, secret string, ttl time.Duration, secure bool) *CookieCodec {
	sc := securecookie.New([]byte(secret), nil)
	sc.MaxAge(int(ttl / time.Second))

	return &CookieCodec{
		name:   name,
		ttl:    ttl,
		secure: secure,
		sc:     sc,
	}
}

// ReadID extracts and verifies the session ID from the request cookie.
// The second return is false when the cookie is missing, expired, or fails
// signature verification.
func (c *CookieCodec) ReadID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.name)
	if err != nil {
		return "", false
	}

	var id string
	if err := c.sc.Decode(c.name, cookie.Value, &id); err != nil {
		return "", false
	}
	if id == "" {
		return "", false
	}

	return id, true
}

// WriteID sets the signed session cookie on the response.
func (c *CookieCodec) WriteID(w http.ResponseWriter, id string) error {
	encoded, err := c.sc.Encode(c.name, id)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    encoded,
		Path:     "/",
		MaxAge:   int(c.ttl / time.Second),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteDefaultMode,
	})
	return nil
}

// Clear expires the cookie on the client.
func (c *CookieCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		HttpOnly: true,
		Secure:   c.secure,
	})
}
