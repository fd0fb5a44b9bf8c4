package tracks

import (
	"fmt"
	"strings"

	"mkvsmith/internal/language"
	"mkvsmith/internal/media/ffprobe"
)

// Type classifies a track by the kind of stream it carries.
type Type int

const (
	Video Type = iota
	Audio
	Subtitle
)

// Types lists the track types in the order mkvmerge selectors are emitted.
var Types = []Type{Video, Audio, Subtitle}

func (t Type) String() string {
	switch t {
	case Video:
		return "video"
	case Audio:
		return "audio"
	case Subtitle:
		return "subtitle"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// MarshalText renders the type name for JSON output.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts the forms understood by ParseType.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Letter is the single-letter prefix used for type-scoped track references.
func (t Type) Letter() string {
	switch t {
	case Video:
		return "v"
	case Audio:
		return "a"
	default:
		return "s"
	}
}

// ParseType accepts "video", "audio", "subtitle" and their one-letter forms.
func ParseType(value string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "v", "video":
		return Video, nil
	case "a", "audio":
		return Audio, nil
	case "s", "sub", "subs", "subtitle", "subtitles":
		return Subtitle, nil
	default:
		return 0, fmt.Errorf("unknown track type %q", value)
	}
}

// Track is one video, audio, or subtitle stream of an inspected file.
// Index is the global stream index in container order. SubtitleIndex numbers
// subtitle tracks among themselves (0-based) and is -1 for other types.
type Track struct {
	Index         int    `json:"index"`
	Type          Type   `json:"type"`
	Codec         string `json:"codec"`
	Language      string `json:"language"`
	Title         string `json:"title,omitempty"`
	Default       bool   `json:"default"`
	SubtitleIndex int    `json:"subtitle_index"`
}

// List is an inspection snapshot. It is never mutated after construction; a
// new inspection produces a new List.
type List []Track

// FromFFprobe builds a List from ffprobe output. Streams that are not video,
// audio, or subtitle (attachments, data) are skipped but keep their global
// numbering.
func FromFFprobe(result ffprobe.Result) List {
	list := make(List, 0, len(result.Streams))
	subtitles := 0
	for _, stream := range result.Streams {
		var kind Type
		switch strings.ToLower(stream.CodecType) {
		case "video":
			kind = Video
		case "audio":
			kind = Audio
		case "subtitle":
			kind = Subtitle
		default:
			continue
		}
		track := Track{
			Index:         stream.Index,
			Type:          kind,
			Codec:         strings.ToLower(strings.TrimSpace(stream.CodecName)),
			Language:      language.FromTags(stream.Tags),
			Title:         stream.Tag("title"),
			Default:       stream.IsDefault(),
			SubtitleIndex: -1,
		}
		if kind == Subtitle {
			track.SubtitleIndex = subtitles
			subtitles++
		}
		list = append(list, track)
	}
	return list
}

// ByIndex returns the track with the given global index.
func (l List) ByIndex(index int) (Track, bool) {
	for _, t := range l {
		if t.Index == index {
			return t, true
		}
	}
	return Track{}, false
}

// OfType returns the tracks of the given type in container order.
func (l List) OfType(kind Type) List {
	var out List
	for _, t := range l {
		if t.Type == kind {
			out = append(out, t)
		}
	}
	return out
}

// FirstAudio returns the first audio track in container order.
func (l List) FirstAudio() (Track, bool) {
	for _, t := range l {
		if t.Type == Audio {
			return t, true
		}
	}
	return Track{}, false
}

// TypeIndex returns the track's position among tracks of its own type, or -1
// when the index is unknown.
func (l List) TypeIndex(index int) int {
	track, ok := l.ByIndex(index)
	if !ok {
		return -1
	}
	n := 0
	for _, t := range l {
		if t.Index == index {
			return n
		}
		if t.Type == track.Type {
			n++
		}
	}
	return -1
}
