// Package logging assembles the structured slog loggers sfollow uses for
// diagnostics.
//
// Diagnostics are kept apart from the user-facing status notices: they go to
// stderr (and optionally a file) through either a compact console handler or
// the JSON handler, filtered by level. The package also provides a no-op logger
// for tests and wiring code that cannot fail.
package logging
