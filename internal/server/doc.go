// Package server exposes the catalog over HTTP under /api.
//
// Routes use method-qualified ServeMux patterns. Every response carries an
// X-Request-ID header, CORS is handled by rs/cors, and an optional directory
// of static files is served at the root for a browser front end. Errors are
// always JSON bodies of the form {"message": "..."}.
package server
