package remux

import (
	"mkvsmith/internal/deps"
	"mkvsmith/internal/media/tracks"
)

// Plan is a compiled, ready-to-run sequence of tool invocations. Plans are
// created by Compiler.Compile, executed once, and discarded.
type Plan struct {
	// Source is the primary input as given by the caller.
	Source string
	// Tracks is the inspection snapshot the plan was compiled against.
	Tracks    tracks.List
	Transcode *TranscodePass
	Mux       MuxPass
}

// TranscodePass rewrites the primary source into a temp file, copying every
// stream except the re-encoded audio tracks.
type TranscodePass struct {
	Input   string
	Output  string
	Streams []StreamMapping
}

// StreamMapping places one input stream at an output position.
type StreamMapping struct {
	Index    int
	Position int
	Type     tracks.Type
	// Codec is "copy" or the ffmpeg encoder name.
	Codec   string
	Bitrate string
	Default bool
}

// Transcoded reports whether the stream is re-encoded rather than copied.
func (m StreamMapping) Transcoded() bool {
	return m.Codec != codecCopy
}

// Args returns the ffmpeg arguments for the pass, output path last.
func (p TranscodePass) Args() []string {
	return ffmpegArgs(p)
}

// MuxPass is the mkvmerge invocation producing the final output.
type MuxPass struct {
	Output string
	Title  string
	Inputs []MuxInput
}

// MuxInput is one (selectors, directives, input path) triple. Selectors and
// directives apply to Path only.
type MuxInput struct {
	Path       string
	Selectors  []string
	Directives []string
}

// Args returns the input's argument group in mkvmerge order.
func (in MuxInput) Args() []string {
	out := make([]string, 0, len(in.Selectors)+len(in.Directives)+1)
	out = append(out, in.Selectors...)
	out = append(out, in.Directives...)
	return append(out, in.Path)
}

// Args returns the mkvmerge arguments writing to output.
func (m MuxPass) Args(output string) []string {
	args := []string{"-o", output}
	if m.Title != "" {
		args = append(args, "--title", m.Title)
	}
	for _, in := range m.Inputs {
		args = append(args, in.Args()...)
	}
	return args
}

// Commands renders the plan as full argument vectors, in execution order,
// using the final output path. Used for dry runs.
func (p *Plan) Commands(tc deps.Toolchain) [][]string {
	if p == nil {
		return nil
	}
	var out [][]string
	if p.Transcode != nil {
		out = append(out, tc.FFmpeg.Args(p.Transcode.Args()...))
	}
	return append(out, tc.Mkvmerge.Args(p.Mux.Args(p.Mux.Output)...))
}

// TempFiles lists the intermediate files the plan creates.
func (p *Plan) TempFiles() []string {
	if p == nil {
		return nil
	}
	files := []string{}
	if p.Transcode != nil {
		files = append(files, p.Transcode.Output)
	}
	return append(files, stagingPath(p.Mux.Output))
}
