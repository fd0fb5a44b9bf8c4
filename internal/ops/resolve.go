package ops

import (
	"sort"
	"strings"

	"mkvsmith/internal/language"
	"mkvsmith/internal/media/tracks"
)

// DefaultTarget is the single track of a type that ends up flagged default.
// Exactly one of Index (a track of the primary input) or External (a position
// in Intent.Externals) is meaningful.
type DefaultTarget struct {
	Index    int
	External int
	// FromExternal reports that the target is an added external track.
	FromExternal bool
}

// External is an AddExternalTrack after resolution. Default is true only for
// the external track that won its type's default claim.
type External struct {
	Type     tracks.Type
	Path     string
	Language string
	Default  bool
}

// Intent is the canonical per-track result of resolving a Queue.
type Intent struct {
	Removed    map[int]bool
	Languages  map[int]string
	Titles     map[int]string
	Transcodes map[int]string
	Defaults   map[tracks.Type]DefaultTarget
	Externals  []External
}

// Resolve collapses a queue into an Intent:
//   - every operation referencing a removed index is dropped
//   - the last language, title, and transcode per index win
//   - the last default claim per type wins, whether it came from SetDefault or
//     from an external track added as default
func Resolve(q *Queue) Intent {
	intent := Intent{
		Removed:    map[int]bool{},
		Languages:  map[int]string{},
		Titles:     map[int]string{},
		Transcodes: map[int]string{},
		Defaults:   map[tracks.Type]DefaultTarget{},
	}
	ops := q.Operations()
	for _, op := range ops {
		if remove, ok := op.(RemoveTrack); ok {
			intent.Removed[remove.Index] = true
		}
	}

	for _, op := range ops {
		switch o := op.(type) {
		case RemoveTrack:
		case SetLanguage:
			if intent.Removed[o.Index] {
				continue
			}
			intent.Languages[o.Index] = language.ToISO3(o.Language)
		case SetTitle:
			if intent.Removed[o.Index] {
				continue
			}
			intent.Titles[o.Index] = strings.TrimSpace(o.Title)
		case SetDefault:
			if intent.Removed[o.Index] {
				continue
			}
			intent.Defaults[o.Type] = DefaultTarget{Index: o.Index}
		case TranscodeAudio:
			if intent.Removed[o.Index] {
				continue
			}
			intent.Transcodes[o.Index] = strings.ToLower(strings.TrimSpace(o.Codec))
		case AddExternalTrack:
			intent.Externals = append(intent.Externals, External{
				Type:     o.Type,
				Path:     o.Path,
				Language: language.ToISO3(o.Language),
			})
			if o.Default {
				intent.Defaults[o.Type] = DefaultTarget{External: len(intent.Externals) - 1, FromExternal: true}
			}
		}
	}

	for _, target := range intent.Defaults {
		if target.FromExternal {
			intent.Externals[target.External].Default = true
		}
	}
	return intent
}

// HasTranscode reports whether any audio track is re-encoded.
func (in Intent) HasTranscode() bool {
	return len(in.Transcodes) > 0
}

// Indices returns every primary-input index the intent references, sorted.
func (in Intent) Indices() []int {
	seen := map[int]struct{}{}
	for idx := range in.Removed {
		seen[idx] = struct{}{}
	}
	for idx := range in.Languages {
		seen[idx] = struct{}{}
	}
	for idx := range in.Titles {
		seen[idx] = struct{}{}
	}
	for idx := range in.Transcodes {
		seen[idx] = struct{}{}
	}
	for _, target := range in.Defaults {
		if !target.FromExternal {
			seen[target.Index] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Surviving returns the tracks of list that are not removed.
func (in Intent) Surviving(list tracks.List) tracks.List {
	out := make(tracks.List, 0, len(list))
	for _, t := range list {
		if !in.Removed[t.Index] {
			out = append(out, t)
		}
	}
	return out
}
