package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"mkvsmith/internal/media/tracks"
	"mkvsmith/internal/ops"
	"mkvsmith/internal/remux"
	"mkvsmith/internal/textutil"
)

var (
	subtitleExtensions = []string{".srt", ".ass", ".ssa", ".sub", ".vtt", ".sup"}
	audioExtensions    = []string{".aac", ".ac3", ".eac3", ".dts", ".flac", ".m4a", ".mka", ".mp3", ".ogg", ".opus", ".wav"}
)

func newCreateCommand(ctx *commandContext) *cobra.Command {
	var output string
	var title string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "create INPUT[:LANG]...",
		Short: "Build a new Matroska container from several inputs",
		Long: `Build a new Matroska container from several inputs.

The first input supplies the primary tracks; LANG on it tags its first track.
Further inputs are classified by extension: subtitle and audio files are added
as single tracks tagged with LANG, other files are merged whole.

The output defaults to the sanitized --title, or <prefix><stem>.mkv beside the
first input.`,
		Example: `  mkvsmith create movie.mp4:eng movie.slv.srt:slv --title "Movie (1999)"
  mkvsmith create -o out.mkv video.mkv commentary.ac3:eng`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cfg, logger, err := ctx.session(cmd)
			if err != nil {
				return err
			}
			inputs := make([]externalInput, 0, len(args))
			for _, arg := range args {
				path, lang := splitLanguage(strings.TrimSpace(arg))
				if path == "" {
					return fmt.Errorf("%q: missing file path", arg)
				}
				inputs = append(inputs, externalInput{Path: path, Language: lang})
			}
			sources, queue := createQueue(inputs)

			target := strings.TrimSpace(output)
			if target == "" {
				target = defaultCreateOutput(inputs[0].Path, title, cfg.Edit.OutputPrefix)
			}

			tc := toolchain(runCtx, cfg)
			compiler := remux.NewCompiler(inspector(tc, logger), cfg.Batch.AudioBitrate, logger)
			plan, err := compiler.Compile(runCtx, queue, sources, target)
			if err != nil {
				return err
			}
			plan.Mux.Title = strings.TrimSpace(title)
			if dryRun {
				printPlan(cmd, plan, tc)
				return nil
			}
			if err := remux.NewExecutor(tc, logger).Execute(runCtx, plan); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	cmd.Flags().StringVar(&title, "title", "", "Container title")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the commands without running them")
	return cmd
}

// createQueue turns the inputs into mux sources and operations. Subtitle and
// audio files become external tracks; other files without a language are
// merged as plain sources.
func createQueue(inputs []externalInput) ([]string, *ops.Queue) {
	primary := inputs[0]
	sources := []string{primary.Path}
	q := ops.NewQueue()
	if primary.Language != "" {
		q.Add(ops.SetLanguage{Index: 0, Language: primary.Language})
	}
	for _, in := range inputs[1:] {
		kind, known := inputKind(in.Path)
		if !known && in.Language == "" {
			sources = append(sources, in.Path)
			continue
		}
		q.Add(ops.AddExternalTrack{Type: kind, Path: in.Path, Language: in.Language})
	}
	return sources, q
}

// inputKind classifies a file by extension. Unknown extensions report Video.
func inputKind(path string) (tracks.Type, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range subtitleExtensions {
		if ext == candidate {
			return tracks.Subtitle, true
		}
	}
	for _, candidate := range audioExtensions {
		if ext == candidate {
			return tracks.Audio, true
		}
	}
	return tracks.Video, false
}

func defaultCreateOutput(primary, title, prefix string) string {
	if name := textutil.SanitizeFileName(title); name != "" {
		return filepath.Join(filepath.Dir(primary), name+".mkv")
	}
	return defaultEditOutput(primary, prefix)
}
