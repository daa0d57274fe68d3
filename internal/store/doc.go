// Package store persists catalog productions.
//
// Two backends satisfy the Store interface: a JSON file that is loaded at
// open and rewritten wholesale on every mutation, and a SQLite database. Both
// assign identifiers from a monotonic counter seeded with the largest
// existing id so concurrent inserts never collide and ids keep increasing
// after deletes.
//
// The JSON backend serializes mutations with a mutex and holds an advisory
// file lock while rewriting the file. Write failures are logged and do not
// fail the calling operation; the in-memory set stays authoritative.
package store
