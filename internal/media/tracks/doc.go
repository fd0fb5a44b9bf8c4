// Package tracks models the video, audio, and subtitle tracks of a media file
// and normalizes ffprobe output into that model.
//
// Tracks are addressed canonically by their global stream index. The
// subtitle-scoped index is carried alongside for display; translation to the
// type-scoped references the multiplexer expects happens in the remux
// package only.
package tracks
