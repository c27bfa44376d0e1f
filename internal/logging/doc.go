// Package logging builds the slog loggers used across splice and defines the
// standardized structured field names shared by the CLI and pipeline stages.
package logging
