// Package language normalizes the BCP 47 language tags passed to media
// search.
//
// TMDB expects tags like "pt-BR" or "en-US". Callers hand in whatever the
// client sent; this package canonicalizes valid tags and reports invalid
// ones so the caller can fall back to the configured default.
package language
