// Package main hosts the mkvsmith CLI entrypoint and command graph.
//
// The Cobra command tree covers single-file work (inspect, edit, create),
// the unattended batch mode, toolchain checks, and configuration
// scaffolding. Commands share a commandContext that loads configuration and
// builds the logger once; the remux and batch packages do the actual work.
package main
