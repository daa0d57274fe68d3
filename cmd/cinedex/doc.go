// Package main hosts the cinedex CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into calls
// against a running cinedexd: listing and paging the catalog, adding and
// editing productions through the create/edit form, TMDB auto-fill, and
// preflight status. Configuration resolution and API client construction are
// centralized in commandContext so subcommands only deal with presentation.
//
// Every command that prints data honours the global --json flag.
package main
