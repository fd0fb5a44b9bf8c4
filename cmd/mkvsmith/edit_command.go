package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"mkvsmith/internal/ops"
	"mkvsmith/internal/remux"
)

type editFlags struct {
	output string
	ops    []rawOp
	dryRun bool
}

func newEditCommand(ctx *commandContext) *cobra.Command {
	var flags editFlags

	cmd := &cobra.Command{
		Use:   "edit SOURCE",
		Short: "Apply track operations to a single file",
		Long: `Apply track operations to a single file and write a new Matroska container.

Operations are queued in the order their flags appear on the command line.
Later values override earlier ones for the same track, and the last default
claim per track type wins, whether it comes from --default or from a file
added with :default. Removal wins over every other operation on a track.
Track indices are the global stream indices shown by "mkvsmith inspect".

The output defaults to <prefix><stem>.mkv beside the source, where the prefix
comes from [edit] output_prefix.`,
		Example: `  mkvsmith edit movie.mkv --remove 3 --default subtitle:4
  mkvsmith edit movie.mkv --transcode 1:ac3 --language 1:eng
  mkvsmith edit movie.mkv --add-subtitle movie.slv.srt:slv:default -o movie.new.mkv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cfg, logger, err := ctx.session(cmd)
			if err != nil {
				return err
			}
			source := args[0]
			queue, err := flags.queue()
			if err != nil {
				return err
			}
			if queue.Len() == 0 {
				return fmt.Errorf("no operations given; see mkvsmith edit --help")
			}
			output := strings.TrimSpace(flags.output)
			if output == "" {
				output = defaultEditOutput(source, cfg.Edit.OutputPrefix)
			}

			tc := toolchain(runCtx, cfg)
			compiler := remux.NewCompiler(inspector(tc, logger), cfg.Batch.AudioBitrate, logger)
			plan, err := compiler.Compile(runCtx, queue, []string{source}, output)
			if err != nil {
				return err
			}
			if flags.dryRun {
				printPlan(cmd, plan, tc)
				return nil
			}
			if err := remux.NewExecutor(tc, logger).Execute(runCtx, plan); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "Output file (default <prefix><stem>.mkv beside the source)")
	flags.registerOps(f)
	f.BoolVar(&flags.dryRun, "dry-run", false, "Print the commands without running them")
	return cmd
}

// registerOps adds the operation flags to fs. They share one slice so the
// queue keeps their command-line order.
func (f *editFlags) registerOps(fs *pflag.FlagSet) {
	fs.Var(newOpValue("remove", "index", &f.ops), "remove", "Remove track INDEX; accepts a comma list (repeatable)")
	fs.Var(newOpValue("language", "index:lang", &f.ops), "language", "Set language, INDEX:LANG (repeatable)")
	fs.Var(newOpValue("title", "index:title", &f.ops), "title", "Set track name, INDEX:TITLE (repeatable)")
	fs.Var(newOpValue("default", "type:index", &f.ops), "default", "Make a track the default of its type, TYPE:INDEX (repeatable)")
	fs.Var(newOpValue("transcode", "index:codec", &f.ops), "transcode", "Re-encode an audio track, INDEX:CODEC (repeatable)")
	fs.Var(newOpValue("add-subtitle", "path", &f.ops), "add-subtitle", "Add a subtitle file, PATH[:LANG[:default]] (repeatable)")
	fs.Var(newOpValue("add-audio", "path", &f.ops), "add-audio", "Add an audio file, PATH[:LANG[:default]] (repeatable)")
}

// queue turns the operation flags into a queue in command-line order.
func (f editFlags) queue() (*ops.Queue, error) {
	q := ops.NewQueue()
	for _, raw := range f.ops {
		op, err := raw.operation()
		if err != nil {
			return nil, err
		}
		q.Add(op)
	}
	return q, nil
}

func defaultEditOutput(source, prefix string) string {
	base := filepath.Base(source)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(source), prefix+stem+".mkv")
}
