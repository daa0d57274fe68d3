// Package preflight provides readiness checks for the filesystem paths and
// external services cinedex depends on.
//
// The CLI "cinedex status" command runs RunAll and renders each Result as a
// row. Checks never return errors; a failed check carries a short Detail
// describing what went wrong.
package preflight
