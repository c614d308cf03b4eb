// Package server assembles the HTTP surface: the chi router, the middleware
// pipeline ordering, and the route handlers that proxy CRUD operations to
// the upstream services.
//
// Handlers read everything they need from the enriched request context and
// do exactly two things: forward a whitelisted body upstream, and pick a
// redirect or JSON response based on the outcome. Business rules live
// upstream; authentication and authorization live in middleware.
package server
