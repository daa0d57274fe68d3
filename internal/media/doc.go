// Package media maps TMDB multi search matches onto catalog search results.
//
// Only movie and TV matches survive. Genre names come from per-media-type
// genre tables: built-in Portuguese defaults that a YAML file can override.
package media
