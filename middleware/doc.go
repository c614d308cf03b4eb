// Package middleware implements the request pipeline every inbound request
// passes through:
//
//	session restore -> authentication gate -> access control -> enrichment -> handler
//
// Each stage either attaches something to the request context and calls the
// next handler, or ends the request with a redirect or an error body. Later
// stages never run after an early exit, which is what guarantees that no
// upstream call is made on behalf of an unauthenticated request.
//
// # Stages
//
//   - [Restore] - loads (or mints) the session behind the signed cookie.
//   - [Gate] - consumes a one-time ?jwt= token: persists it into the session,
//     then redirects with the token stripped so it never lands in browser
//     history or Referer headers.
//   - [RequireAuthenticated] - redirects credential-less requests to the
//     identity provider with the original URL as the return target.
//   - [WithUser] / [RequireRole] - resolves the caller and enforces the role.
//   - [WithSite] / [WithSites] - resolves tenant context for handlers.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into session and upstream calls.
// It does NOT render pages, interpret credentials, or talk to Redis directly.
package middleware
