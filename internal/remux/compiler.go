package remux

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"mkvsmith/internal/language"
	"mkvsmith/internal/logging"
	"mkvsmith/internal/media/audio"
	"mkvsmith/internal/media/tracks"
	"mkvsmith/internal/ops"
	"mkvsmith/internal/services"
)

// Compiler turns operation queues into Plans.
type Compiler struct {
	src     tracks.Source
	bitrate string
	logger  *slog.Logger
}

// NewCompiler returns a Compiler inspecting sources through src. bitrate is
// applied to lossy transcode targets; empty selects audio.DefaultBitrate.
func NewCompiler(src tracks.Source, bitrate string, logger *slog.Logger) *Compiler {
	return &Compiler{
		src:     src,
		bitrate: strings.TrimSpace(bitrate),
		logger:  logging.NewComponentLogger(logger, "compiler"),
	}
}

// Compile resolves q against the tracks of sources[0] and builds a Plan
// writing to output. Further sources are muxed in as plain inputs after the
// primary; external tracks from the queue follow in queue order.
//
// Validation failures carry services.ErrValidation. When inspection fails the
// plan is still built if the queue references no track index; otherwise the
// inspection error is returned.
func (c *Compiler) Compile(ctx context.Context, q *ops.Queue, sources []string, output string) (*Plan, error) {
	if len(sources) == 0 || strings.TrimSpace(sources[0]) == "" {
		return nil, services.Wrap(services.ErrValidation, "compiler", "compile", "no source file", nil)
	}
	if strings.TrimSpace(output) == "" {
		return nil, services.Wrap(services.ErrValidation, "compiler", "compile", "no output path", nil)
	}
	for _, source := range sources {
		if err := requireFile(source); err != nil {
			return nil, err
		}
	}
	primary := sources[0]
	intent := ops.Resolve(q)

	list, err := c.src.Inspect(ctx, primary)
	if err != nil {
		if len(intent.Indices()) > 0 {
			return nil, err
		}
		logging.WarnWithContext(c.logger, "inspection failed; muxing source without track directives", "compile_inspect_failed",
			logging.String(logging.FieldFile, primary),
			logging.Error(err),
			logging.String(logging.FieldImpact, "source tracks are passed through unchanged"),
			logging.String(logging.FieldErrorHint, "verify ffprobe is available"),
		)
		list = tracks.List{}
	}
	if err := validateIntent(intent, list, primary); err != nil {
		return nil, err
	}

	surviving := intent.Surviving(list)
	if len(list) > 0 && len(surviving) == 0 && len(sources) == 1 && len(intent.Externals) == 0 {
		return nil, services.Wrap(services.ErrValidation, "compiler", "compile", "every track is removed; nothing to mux", nil)
	}

	plan := &Plan{Source: primary, Tracks: list, Mux: MuxPass{Output: output}}
	muxSource := primary
	if intent.HasTranscode() {
		plan.Transcode = c.transcodePass(list, intent, primary, output)
		muxSource = plan.Transcode.Output
	}

	b := &muxBuilder{}
	addPrimary(b, list, intent, plan.Transcode, muxSource)
	for _, extra := range sources[1:] {
		b.Input().Directives().Add(extra)
	}
	for _, ext := range intent.Externals {
		addExternal(b, ext, intent)
	}
	plan.Mux.Inputs = b.Inputs()

	c.logger.Debug("plan compiled",
		logging.String(logging.FieldFile, primary),
		logging.String("output", output),
		logging.Int("operations", q.Len()),
		logging.Bool("transcode", plan.Transcode != nil),
		logging.Int("mux_inputs", len(plan.Mux.Inputs)),
	)
	return plan, nil
}

func (c *Compiler) transcodePass(list tracks.List, intent ops.Intent, source, output string) *TranscodePass {
	pass := &TranscodePass{Input: source, Output: transcodePath(output)}
	for pos, t := range list {
		m := StreamMapping{
			Index:    t.Index,
			Position: pos,
			Type:     t.Type,
			Codec:    streamCodec(t),
			Default:  t.Default,
		}
		if target, ok := intent.Transcodes[t.Index]; ok {
			codec, _ := audio.Lookup(target)
			m.Codec = codec.Encoder
			m.Bitrate = codec.Bitrate(c.bitrate)
		}
		pass.Streams = append(pass.Streams, m)
	}
	return pass
}

func addPrimary(b *muxBuilder, list tracks.List, intent ops.Intent, pass *TranscodePass, path string) {
	sel := b.Input()
	for _, kind := range tracks.Types {
		all := list.OfType(kind)
		if len(all) == 0 {
			continue
		}
		var ids []int
		for _, t := range all {
			if !intent.Removed[t.Index] {
				ids = append(ids, muxTrackID(t.Index, pass))
			}
		}
		if len(ids) == 0 {
			sel.Exclude(kind)
		} else {
			sel.Include(kind, ids)
		}
	}

	d := sel.Directives()
	for _, t := range intent.Surviving(list) {
		id := muxTrackID(t.Index, pass)
		if lang, ok := intent.Languages[t.Index]; ok {
			d.Language(id, lang)
		}
		if title, ok := intent.Titles[t.Index]; ok {
			d.TrackName(id, title)
		}
		if target, ok := intent.Defaults[t.Type]; ok {
			d.DefaultFlag(muxTrackRef(list, t.Index), !target.FromExternal && target.Index == t.Index)
		}
	}
	d.Add(path)
}

func addExternal(b *muxBuilder, ext ops.External, intent ops.Intent) {
	d := b.Input().Directives()
	if ext.Language != language.Undetermined {
		d.Language(0, ext.Language)
	}
	if _, claimed := intent.Defaults[ext.Type]; claimed {
		d.DefaultFlag("0", ext.Default)
	}
	d.Add(ext.Path)
}

func validateIntent(intent ops.Intent, list tracks.List, source string) error {
	for _, index := range intent.Indices() {
		if _, ok := list.ByIndex(index); !ok {
			return services.Wrap(services.ErrValidation, "compiler", "validate", fmt.Sprintf("track %d not found in %s", index, source), nil)
		}
	}
	for kind, target := range intent.Defaults {
		if target.FromExternal {
			continue
		}
		track, _ := list.ByIndex(target.Index)
		if track.Type != kind {
			return services.Wrap(services.ErrValidation, "compiler", "validate",
				fmt.Sprintf("track %d is a %s track, not %s", target.Index, track.Type, kind), nil)
		}
	}
	for index, codec := range intent.Transcodes {
		track, _ := list.ByIndex(index)
		if track.Type != tracks.Audio {
			return services.Wrap(services.ErrValidation, "compiler", "validate",
				fmt.Sprintf("track %d is a %s track; only audio can be transcoded", index, track.Type), nil)
		}
		if _, ok := audio.Lookup(codec); !ok {
			return services.Wrap(services.ErrValidation, "compiler", "validate",
				fmt.Sprintf("unsupported audio codec %q (supported: %s)", codec, strings.Join(audio.Supported(), ", ")), nil)
		}
	}
	for _, ext := range intent.Externals {
		if err := requireFile(ext.Path); err != nil {
			return err
		}
	}
	return nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return services.Wrap(services.ErrValidation, "compiler", "validate", "input not found: "+path, err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrValidation, "compiler", "validate", "input is a directory: "+path, nil)
	}
	return nil
}
