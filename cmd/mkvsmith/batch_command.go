package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"mkvsmith/internal/batch"
	"mkvsmith/internal/logging"
	"mkvsmith/internal/preflight"
	"mkvsmith/internal/remux"
	"mkvsmith/internal/textutil"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var root string
	var deleteSources bool
	var quick int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Bring every video under a directory in line with the subtitle and audio policy",
		Long: `Walk a directory tree and remux each file to policy.

Existing .mkv containers gain a missing preferred-language subtitle from a
sidecar .srt, get their default subtitle corrected, and have the first audio
track re-encoded when its codec differs from [batch] target_audio_codec.
Other videos are converted to <stem>.mkv beside the source unless that file
already exists.

Per-file failures are reported in the summary and do not change the exit
status. Only a missing mkvmerge fails the command.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cfg, logger, err := ctx.session(cmd)
			if err != nil {
				return err
			}
			target, err := batchRoot(root)
			if err != nil {
				return err
			}
			opts := batch.Options{
				Root:          target,
				DeleteSources: deleteSources || cfg.Batch.DeleteSources || quick >= 2,
			}
			if quick == 1 {
				opts.DeleteSources = false
			}

			tc := toolchain(runCtx, cfg)
			if err := tc.Mkvmerge.Require(); err != nil {
				return err
			}

			lock := flock.New(batchLockPath(target))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire batch lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another batch run is already processing %s", target)
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					logger.Warn("failed to release batch lock", logging.Error(err))
				}
			}()

			for _, check := range preflight.RunAll(runCtx, cfg, target, tc) {
				if check.Passed {
					logger.Debug("preflight passed", logging.String("check", check.Name), logging.String("detail", check.Detail))
					continue
				}
				logging.WarnWithContext(logger, "preflight check failed", "preflight_failed",
					logging.String("check", check.Name),
					logging.String("detail", check.Detail),
					logging.String(logging.FieldImpact, "files touching this resource may fail"),
				)
			}
			if !tc.FFprobe.Available() {
				logging.WarnWithContext(logger, "ffprobe unavailable", "tool_missing",
					logging.String(logging.FieldTool, "ffprobe"),
					logging.String(logging.FieldImpact, "existing tracks are treated as unknown"),
					logging.String(logging.FieldErrorHint, "install ffmpeg or set [tools] ffprobe"),
				)
			}

			runner := batch.NewRunner(cfg, inspector(tc, logger), remux.NewExecutor(tc, logger), tc.FFmpeg.Available(), logger)
			summary, runErr := runner.Run(runCtx, opts)
			printBatchSummary(cmd.OutOrStdout(), target, summary)
			return runErr
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Directory to process (default: current directory)")
	cmd.Flags().BoolVar(&deleteSources, "delete-sources", false, "Delete source videos and sidecars after a verified remux")
	cmd.Flags().CountVarP(&quick, "quick", "q", "Compatibility: -q keeps sources, -qq deletes them after success")
	return cmd
}

func batchRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve batch root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("batch root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("batch root %s is not a directory", abs)
	}
	return abs, nil
}

// batchLockPath names a lock file unique to root.
func batchLockPath(root string) string {
	sum := sha256.Sum256([]byte(root))
	name := fmt.Sprintf("mkvsmith-%s-%s.lock", textutil.SanitizeToken(filepath.Base(root)), hex.EncodeToString(sum[:6]))
	return filepath.Join(os.TempDir(), name)
}

func printBatchSummary(out io.Writer, root string, summary batch.Summary) {
	var rows [][]string
	for _, res := range summary.Results {
		if res.Status == batch.StatusUnchanged {
			continue
		}
		detail := res.Action
		if res.Status == batch.StatusFailed {
			detail = res.Diagnostic
		}
		if len(res.Deleted) > 0 {
			detail += " (deleted " + strconv.Itoa(len(res.Deleted)) + ")"
		}
		rows = append(rows, []string{relativePath(root, res.Path), res.Kind, string(res.Status), detail})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable([]string{"File", "Kind", "Status", "Detail"}, rows, nil))
	}
	fmt.Fprintf(out, "Processed %d files in %s: %d succeeded, %d unchanged, %d skipped, %d failed, %d deleted\n",
		summary.Processed(),
		summary.Duration.Round(time.Millisecond),
		summary.Succeeded,
		summary.Unchanged,
		summary.Skipped,
		summary.Failed,
		summary.Deleted,
	)
}

func relativePath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
