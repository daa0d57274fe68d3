// Package daemon runs cinedexd: it owns the production store, the HTTP
// server and a single-instance lock on the data directory.
//
// New wires the API services (including the TMDB-backed media search when a
// key is configured) and Start binds the listener. Stop drains in-flight
// requests and releases the lock; Close also closes the store.
package daemon
