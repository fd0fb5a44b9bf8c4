// Package audio holds the target codec table used when re-encoding audio
// tracks: codec name to ffmpeg encoder, lossless flag, and bitrate policy.
//
// Primary entry points:
//   - Lookup: resolves a target codec name
//   - Codec.Bitrate: the bitrate directive for a lossy target, if any
package audio
