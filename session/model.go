package session

import (
	"time"

	"github.com/google/uuid"
)

// Flash is a transient, single-read message queued on the session, shown to
// the staff user on the page they are redirected to.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Session is the server-side record keyed by the cookie-delivered ID.
//
// Token is the opaque bearer credential installed by the authentication gate;
// it is never inspected for authorization decisions, only forwarded upstream.
// Request-handling code borrows a Session for the request's duration; the
// Store remains the owner.
type Session struct {
	ID      string  `json:"id"`
	Token   string  `json:"token,omitempty"`
	Flashes []Flash `json:"flashes,omitempty"`

	CreatedAt int64 `json:"created_at"`
	ExpiresAt int64 `json:"expires_at"`
}

// New mints an empty session with a fresh ID, live for ttl from now.
func New(ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(ttl).Unix(),
	}
}

// Authenticated reports whether the session holds a credential. This is the
// only source of the authentication flag; it is never stored.
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// Touch extends the session's expiry to ttl from now.
func (s *Session) Touch(ttl time.Duration) {
	s.ExpiresAt = time.Now().Add(ttl).Unix()
}

// Expired reports whether the session's own expiry has passed at now.
func (s *Session) Expired(now time.Time) bool {
	return now.Unix() > s.ExpiresAt
}

// AddFlash queues a transient message of the given kind ("success", "error").
func (s *Session) AddFlash(kind, message string) {
	s.Flashes = append(s.Flashes, Flash{Kind: kind, Message: message})
}

// DrainFlashes returns all queued messages and empties the queue. Callers
// must Save the session afterwards or the messages reappear.
func (s *Session) DrainFlashes() []Flash {
	out := s.Flashes
	s.Flashes = nil
	return out
}
