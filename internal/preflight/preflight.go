package preflight

import (
	"context"
	"path/filepath"

	"mkvsmith/internal/config"
	"mkvsmith/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the readiness checks for a batch over root: the root must be
// readable and writable, the multiplexer must execute, and the optional tools
// are checked when resolved.
func RunAll(ctx context.Context, cfg *config.Config, root string, tc deps.Toolchain) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if root != "" {
		results = append(results, CheckDirectoryAccess("Batch root", root))
	}

	if cfg.Logging.File != "" {
		results = append(results, CheckDirectoryAccess("Log directory", filepath.Dir(cfg.Logging.File)))
	}

	results = append(results, CheckTool(ctx, tc.Mkvmerge, "--version"))
	if tc.FFprobe.Available() {
		results = append(results, CheckTool(ctx, tc.FFprobe, "-version"))
	}
	if tc.FFmpeg.Available() {
		results = append(results, CheckTool(ctx, tc.FFmpeg, "-version"))
	}

	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
