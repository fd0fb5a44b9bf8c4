// Package services defines shared error markers and context helpers consumed
// by the inspector, compiler, and batch runner.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, the current media file, and the
//     processing mode for logging.
//   - Structured error markers plus the Wrap helper so callers can decide
//     whether a failure aborts the run, the current file, or nothing at all.
//
// Use these helpers when wiring new components so failure classification
// stays uniform across edit and batch modes.
package services
