package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"mkvsmith/internal/language"
	"mkvsmith/internal/media/tracks"
)

type inspectPayload struct {
	File   string      `json:"file"`
	Tracks tracks.List `json:"tracks"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the video, audio, and subtitle tracks of a media file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx, cfg, logger, err := ctx.session(cmd)
			if err != nil {
				return err
			}
			tc := toolchain(runCtx, cfg)
			if err := tc.FFprobe.Require(); err != nil {
				return err
			}
			list, err := inspector(tc, logger).Inspect(runCtx, args[0])
			if err != nil {
				return err
			}

			if asJSON {
				if list == nil {
					list = tracks.List{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(inspectPayload{File: args[0], Tracks: list})
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintf(out, "No tracks found in %s\n", args[0])
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Index", "Ref", "Type", "Codec", "Language", "Title", "Default"},
				trackRows(list),
				[]columnAlignment{alignRight},
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the track list as JSON")
	return cmd
}

func trackRows(list tracks.List) [][]string {
	rows := make([][]string, 0, len(list))
	for _, t := range list {
		lang := t.Language
		if lang != language.Undetermined {
			lang = fmt.Sprintf("%s (%s)", lang, language.DisplayName(lang))
		}
		rows = append(rows, []string{
			strconv.Itoa(t.Index),
			t.Type.Letter() + strconv.Itoa(list.TypeIndex(t.Index)),
			t.Type.String(),
			t.Codec,
			lang,
			t.Title,
			yesNo(t.Default),
		})
	}
	return rows
}
