// Package logging builds the slog loggers used by cinedexd and its packages.
//
// New writes either a one-line console format (component prefix, then
// key=value pairs) or JSON, to the terminal and optionally to an appended log
// file. WarnWithContext and ErrorWithContext keep warnings and errors tagged
// with event_type and error_hint so they can be filtered, and WithContext adds
// the HTTP request id to a logger.
package logging
