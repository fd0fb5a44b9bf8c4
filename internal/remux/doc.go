// Package remux compiles resolved edit operations into an executable plan of
// external tool invocations and runs it.
//
// A Plan has an optional ffmpeg transcode pass followed by an mkvmerge mux
// pass. Tracks are addressed internally by their global stream index; the
// translation to mkvmerge track IDs and type-scoped references happens once,
// while the mux arguments are built. The Executor guarantees temp-file cleanup
// on every exit path and only replaces the output after mkvmerge succeeds and
// the staged file is confirmed on disk.
package remux
