// Package siteadmin wires an administrative web backend for managing tenant
// websites ("sites"), their content items ("ideas"), and users. Durable data
// lives behind remote HTTP APIs; this package owns only the configuration
// surface shared by the session, middleware, upstream, and server
// sub-packages.
//
// # Architecture boundaries
//
// siteadmin exposes [Config] and nothing else. Session persistence lives in
// session/, the request pipeline in middleware/, upstream API clients in
// upstream/, and HTTP routing in server/. Each sub-package owns the sentinel
// errors for the failures it can produce.
//
// # What this package must NOT do
//
//   - Perform I/O beyond reading configuration at process start.
//   - Import any sub-package that re-imports siteadmin (no import cycles).
package siteadmin
