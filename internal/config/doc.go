// Package config loads, normalizes, and validates cinedex configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// TMDB_API_KEY and PORT. A .env file next to the working directory or the
// config file is loaded first so secrets never need to live in the TOML file
// or in source.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
