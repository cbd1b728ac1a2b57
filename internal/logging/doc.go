// Package logging constructs slog loggers with console and JSON handlers
// and provides standardized attribute helpers and field keys used across
// the application.
package logging
