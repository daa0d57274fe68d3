// Package tmdb provides the minimal TMDB API client used by catalog auto-fill.
//
// It exposes the multi search endpoint and a configuration probe used by
// preflight checks. Outbound calls share a token-bucket limiter and an HTTP
// timeout; options let tests supply their own HTTP client or limiter.
package tmdb
