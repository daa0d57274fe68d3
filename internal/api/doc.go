// Package api implements the catalog operations behind the HTTP routes and
// the wire types they exchange.
//
// # Services
//
// ProductionService: list, search, create, update and delete over a
// ProductionStore. Request bodies are decoded here so malformed JSON maps to
// ErrInvalidInput before the store is touched.
//
// MediaService: TMDB multi search mapped to media.Result. An empty query
// returns an empty slice without an upstream call; any upstream failure is
// logged and wrapped in ErrUpstream.
//
// # Design Notes
//
// DTOs use camelCase JSON tags for JavaScript consumers. Error and
// confirmation messages are the Portuguese strings the front end displays
// verbatim, so they live here as constants rather than in the HTTP layer.
package api
