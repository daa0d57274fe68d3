// Package production defines the catalog record shared by the store, the HTTP
// API and the terminal client.
//
// A Production carries the canonical fields (title, type, genre, year,
// rating) plus any extra JSON members a client posted, which are kept
// verbatim so they survive a round trip through storage. Decoding applies
// light coercion to year and rating; nothing else is validated.
//
// The package also owns the shallow-merge used by updates and the search
// filter and pagination math used by the search endpoint.
package production
