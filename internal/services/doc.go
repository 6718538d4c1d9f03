// Package services defines shared utilities consumed by the pipeline stages
// and the external decompiler integration.
//
// Key responsibilities:
//   - Context helpers that stamp stage names and run correlation identifiers
//     for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (external tool, validation, configuration, missing input) so the run
//     loop can log a consistent error code and operator hint.
//
// Use these helpers when wiring new stage logic so failure reporting stays
// uniform across the pipeline.
package services
