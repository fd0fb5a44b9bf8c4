package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mkvsmith/internal/config"
	"mkvsmith/internal/drapto"
	"mkvsmith/internal/remux"
)

type convertFlags struct {
	output       string
	videoCodec   string
	crf          int
	audioCodec   string
	audioBitrate string
	av1Encoder   string
	dryRun       bool
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert SOURCE",
		Short: "Re-encode a whole file into a new Matroska container",
		Long: `Re-encode every stream of a file into a new Matroska container.

Video is re-encoded with h264, h265, vp9 or av1 at the given CRF (18 high,
23 medium, 28 low quality), or copied. Audio is re-encoded with aac, ac3,
flac, mp3, opus or vorbis, or copied. Subtitles and attachments are copied;
mov_text subtitles become SubRip. Unset flags fall back to the [convert]
section of the configuration.

With --av1-encoder drapto, av1 video is produced by the drapto library
instead of ffmpeg's libaom-av1.`,
		Example: `  mkvsmith convert clip.mp4 --video h265 --crf 23 --audio opus --audio-bitrate 128k
  mkvsmith convert movie.avi --video av1 --av1-encoder drapto -o movie.av1.mkv
  mkvsmith convert movie.mkv --audio flac --dry-run`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cfg, logger, err := ctx.session(cmd)
			if err != nil {
				return err
			}
			source := args[0]
			output := strings.TrimSpace(flags.output)
			if output == "" {
				output = defaultEditOutput(source, cfg.Edit.OutputPrefix)
			}

			tc := toolchain(runCtx, cfg)
			compiler := remux.NewCompiler(inspector(tc, logger), cfg.Batch.AudioBitrate, logger)
			conv, err := compiler.CompileConversion(runCtx, source, output, flags.options(cmd, cfg.Convert))
			if err != nil {
				return err
			}
			if flags.dryRun {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderTable([]string{"Step", "Command"}, [][]string{{"1", shellJoin(conv.Command(tc))}}, []columnAlignment{alignRight}))
				fmt.Fprintf(out, "Output: %s\n", conv.Output)
				return nil
			}
			executor := remux.NewExecutor(tc, logger)
			executor.WithAV1Encoder(drapto.NewLibrary(logger))
			if err := executor.Convert(runCtx, conv); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.output, "output", "o", "", "Output file (default <prefix><stem>.mkv beside the source)")
	f.StringVar(&flags.videoCodec, "video", "", "Video codec: copy, h264, h265, vp9, av1")
	f.IntVar(&flags.crf, "crf", 0, "Video quality; lower is better (18 high, 23 medium, 28 low)")
	f.StringVar(&flags.audioCodec, "audio", "", "Audio codec: copy, aac, ac3, flac, mp3, opus, vorbis")
	f.StringVar(&flags.audioBitrate, "audio-bitrate", "", "Audio bitrate, e.g. 64k to 320k")
	f.StringVar(&flags.av1Encoder, "av1-encoder", "", "AV1 encoder: ffmpeg or drapto")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Print the command without running it")
	return cmd
}

// options merges the flags the user set over the configured defaults.
func (f convertFlags) options(cmd *cobra.Command, defaults config.Convert) remux.ConvertOptions {
	opts := remux.ConvertOptions{
		VideoCodec:   defaults.VideoCodec,
		CRF:          defaults.CRF,
		AudioCodec:   defaults.AudioCodec,
		AudioBitrate: defaults.AudioBitrate,
		AV1Engine:    remux.Engine(defaults.AV1Encoder),
	}
	set := cmd.Flags().Changed
	if set("video") {
		opts.VideoCodec = f.videoCodec
	}
	if set("crf") {
		opts.CRF = f.crf
	}
	if set("audio") {
		opts.AudioCodec = f.audioCodec
	}
	if set("audio-bitrate") {
		opts.AudioBitrate = f.audioBitrate
	}
	if set("av1-encoder") {
		opts.AV1Engine = remux.Engine(strings.ToLower(strings.TrimSpace(f.av1Encoder)))
	}
	return opts
}
