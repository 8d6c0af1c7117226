// Package logging builds the slog loggers used across the pipeline, with a
// human-oriented console handler for interactive runs and a JSON handler for
// file output. Loggers are constructed once and passed explicitly; nothing
// in this repository logs through a package-level default.
package logging
