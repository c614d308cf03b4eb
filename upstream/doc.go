// Package upstream holds HTTP clients for the external services this backend
// proxies to: the site/idea API, the user directory, and the identity
// provider's login endpoint.
//
// Every call attaches the session credential as an X-Authorization bearer
// header, carries the request context so a client disconnect aborts the call,
// and is bounded by the configured timeout. Responses are opaque JSON; a
// non-2xx status surfaces as [ErrUpstream] with whatever error message the
// service included. No call is ever retried.
//
// # What this package must NOT do
//
//   - Inspect or validate the credential (it is an opaque string here).
//   - Cache responses or partial results.
//   - Import session, middleware, or server.
package upstream
