// Package logging builds the slog loggers used by the faviconbuilder CLI.
//
// Text output goes through Handler, which colorizes levels and attribute keys
// when the destination is a terminal that supports color. JSON output uses the
// standard slog JSON handler. Library packages never construct loggers
// themselves; they accept a *slog.Logger and fall back to slog.Default().
package logging
