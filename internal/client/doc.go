// Package client talks to a running cinedexd over its /api surface and holds
// the terminal-side state for the catalog: the create/edit form, the pager
// and the auto-fill flow.
//
// Client is a thin typed wrapper: one method per endpoint, non-2xx responses
// decoded into *APIError. Form and AutoFill depend on small interfaces so
// tests can drive them without a server.
package client
