package middleware

import (
	"context"

	"github.com/openstead/siteadmin/session"
	"github.com/openstead/siteadmin/upstream"
)

type sessionContextKey struct{}
type userContextKey struct{}
type siteContextKey struct{}
type sitesContextKey struct{}

// WithSession attaches the restored session to ctx. Set by [Restore].
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext returns the session attached by [Restore].
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(sessionContextKey{}).(*session.Session)
	return sess, ok
}

// UserFromContext returns the resolved caller attached by [WithUser].
func UserFromContext(ctx context.Context) (*upstream.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*upstream.User)
	return user, ok
}

// SiteFromContext returns the site attached by [WithSite].
func SiteFromContext(ctx context.Context) (*upstream.Site, bool) {
	site, ok := ctx.Value(siteContextKey{}).(*upstream.Site)
	return site, ok
}

// SitesFromContext returns the site list attached by [WithSites].
func SitesFromContext(ctx context.Context) ([]upstream.Site, bool) {
	sites, ok := ctx.Value(sitesContextKey{}).([]upstream.Site)
	return sites, ok
}

func withUser(ctx context.Context, user *upstream.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

func withSite(ctx context.Context, site *upstream.Site) context.Context {
	return context.WithValue(ctx, siteContextKey{}, site)
}

func withSites(ctx context.Context, sites []upstream.Site) context.Context {
	return context.WithValue(ctx, sitesContextKey{}, sites)
}
