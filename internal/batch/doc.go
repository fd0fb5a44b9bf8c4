// Package batch implements unattended remuxing of a directory tree.
//
// The Classifier inspects a file's tracks and decides what, if anything, has
// to change: a missing preferred-language subtitle taken from a sidecar file,
// a default flag on the best preferred subtitle, or re-encoding the first
// audio track to the target codec. Decisions translate into an ops.Queue that
// the remux compiler turns into tool invocations. Classifying the output of a
// successful pass always yields no action, so repeated runs are idempotent.
//
// The Runner walks the tree, processes existing containers before bare video
// files, keeps per-file failures local, and only deletes sources after the
// output is confirmed on disk.
package batch
