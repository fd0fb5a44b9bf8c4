package remux

import (
	"strconv"
	"strings"

	"mkvsmith/internal/media/tracks"
)

// muxBuilder assembles mkvmerge input groups. Every group passes through a
// selector stage and a directive stage before its path is added, so options
// always precede the file they apply to.
type muxBuilder struct {
	inputs []MuxInput
}

type selectorStage struct {
	b  *muxBuilder
	in MuxInput
}

type directiveStage struct {
	b  *muxBuilder
	in MuxInput
}

// Input opens a new input group.
func (b *muxBuilder) Input() *selectorStage {
	return &selectorStage{b: b}
}

// Inputs returns the completed groups in order.
func (b *muxBuilder) Inputs() []MuxInput {
	return append([]MuxInput(nil), b.inputs...)
}

// Include keeps only the listed track IDs of kind.
func (s *selectorStage) Include(kind tracks.Type, ids []int) *selectorStage {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	s.in.Selectors = append(s.in.Selectors, includeFlag(kind), strings.Join(parts, ","))
	return s
}

// Exclude drops every track of kind.
func (s *selectorStage) Exclude(kind tracks.Type) *selectorStage {
	s.in.Selectors = append(s.in.Selectors, excludeFlag(kind))
	return s
}

// Directives closes the selector stage.
func (s *selectorStage) Directives() *directiveStage {
	return &directiveStage{b: s.b, in: s.in}
}

// Language tags track id with an ISO 639-2 code.
func (d *directiveStage) Language(id int, lang string) *directiveStage {
	d.in.Directives = append(d.in.Directives, "--language", strconv.Itoa(id)+":"+lang)
	return d
}

// TrackName sets the track name of track id.
func (d *directiveStage) TrackName(id int, name string) *directiveStage {
	d.in.Directives = append(d.in.Directives, "--track-name", strconv.Itoa(id)+":"+name)
	return d
}

// DefaultFlag sets or clears the default flag of the track addressed by ref.
func (d *directiveStage) DefaultFlag(ref string, on bool) *directiveStage {
	value := "no"
	if on {
		value = "yes"
	}
	d.in.Directives = append(d.in.Directives, "--default-track-flag", ref+":"+value)
	return d
}

// Add finishes the group with its input path.
func (d *directiveStage) Add(path string) *muxBuilder {
	d.in.Path = path
	d.b.inputs = append(d.b.inputs, d.in)
	return d.b
}

func includeFlag(kind tracks.Type) string {
	switch kind {
	case tracks.Video:
		return "-d"
	case tracks.Audio:
		return "-a"
	default:
		return "-s"
	}
}

func excludeFlag(kind tracks.Type) string {
	switch kind {
	case tracks.Video:
		return "-D"
	case tracks.Audio:
		return "-A"
	default:
		return "-S"
	}
}

// muxTrackRef translates a global index into the type-scoped reference used
// by default-flag directives ("v0", "a1", "s2"). This is the only place the
// type-scoped numbering exists. Positions are counted over the inspected list,
// which a transcode pass preserves.
func muxTrackRef(list tracks.List, index int) string {
	track, ok := list.ByIndex(index)
	if !ok {
		return strconv.Itoa(index)
	}
	return track.Type.Letter() + strconv.Itoa(list.TypeIndex(index))
}

// muxTrackID is the mkvmerge track ID of a primary-input track: the global
// index, or its output position when a transcode pass rewrote the input.
func muxTrackID(index int, pass *TranscodePass) int {
	if pass == nil {
		return index
	}
	for _, m := range pass.Streams {
		if m.Index == index {
			return m.Position
		}
	}
	return index
}
