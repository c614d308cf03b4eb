// Package session provides the server-side session model, its pluggable
// persistence backends, and the signed cookie that carries the session ID.
//
// # Lifecycle
//
// A session is created on the first request without a valid cookie, mutated
// when a one-time token is installed as its credential, and destroyed on
// logout or when it passes its expiry. The store applies a retention ceiling
// on top of the per-session expiry, so abandoned records age out of the
// backend on their own.
//
// # Architecture boundaries
//
// This package owns [Session], the [Store] implementations, and the
// [CookieCodec]. It does NOT interpret the credential, call upstream
// services, or make authorization decisions; those belong to middleware.
//
// # What this package must NOT do
//
//   - Import siteadmin, middleware, upstream, or server (no upward imports).
//   - Derive or persist an authentication flag; Authenticated is computed
//     from the credential on every read.
package session
