// Package logging assembles the structured slog loggers used by the export
// pipeline.
//
// It owns the console and JSON handlers, level parsing, and output plumbing
// (stdout plus the run log file), and exposes context-aware helpers so stage
// code automatically tags log lines with the stage name and run correlation
// ID. A no-op logger is provided for tests and wiring code that cannot fail.
package logging
