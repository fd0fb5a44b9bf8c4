// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no mkvsmith-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: stream properties including tags and dispositions
//   - Format: container-level metadata (name, stream count)
//
// Primary entry points:
//   - Inspect: executes ffprobe and returns parsed Result
//   - Parse: decodes a captured ffprobe document
package ffprobe
