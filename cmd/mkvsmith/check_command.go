package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mkvsmith/internal/deps"
	"mkvsmith/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report toolchain availability and batch readiness",
		Long: `Report toolchain availability and batch readiness.

Tools are ready, missing, or unavailable when optional. Preflight checks pass
or fail. The command exits nonzero only when the multiplexer is missing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cfg, _, err := ctx.session(cmd)
			if err != nil {
				return err
			}
			target, err := batchRoot(root)
			if err != nil {
				return err
			}
			tc := toolchain(runCtx, cfg)

			statuses := deps.ToolchainStatus(tc)
			toolRows := make([]checkRow, 0, len(statuses))
			for _, status := range statuses {
				toolRows = append(toolRows, toolRow(status))
			}
			results := preflight.RunAll(runCtx, cfg, target, tc)
			checkRows := make([]checkRow, 0, len(results))
			for _, result := range results {
				checkRows = append(checkRows, preflightRow(result))
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderCheckSection("Tools", toolRows, colorize))
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderCheckSection("Preflight", checkRows, colorize))
			fmt.Fprintln(out)
			fmt.Fprintln(out, checkSummary(toolRows, checkRows))

			return tc.Mkvmerge.Require()
		},
	}

	cmd.Flags().StringVar(&root, "root", "", "Batch directory to check (default: current directory)")
	return cmd
}
