package batch

import (
	"path/filepath"
	"strings"

	"mkvsmith/internal/language"
	"mkvsmith/internal/media/audio"
	"mkvsmith/internal/media/tracks"
)

// Classifier decides what a file needs. The preferred-language list is in
// priority order: index 0 is the primary language.
type Classifier struct {
	preferred []string
	priority  map[string]int
	target    string
}

// NewClassifier builds a classifier for the given preferred languages and
// target audio codec.
func NewClassifier(preferred []string, targetCodec string) Classifier {
	normalized := language.NormalizeList(preferred)
	priority := make(map[string]int, len(normalized))
	for i, lang := range normalized {
		priority[lang] = i
	}
	return Classifier{
		preferred: normalized,
		priority:  priority,
		target:    strings.ToLower(strings.TrimSpace(targetCodec)),
	}
}

// Preferred returns the normalized preferred-language list.
func (c Classifier) Preferred() []string {
	return append([]string(nil), c.preferred...)
}

// IsPreferred reports whether lang is one of the preferred languages.
func (c Classifier) IsPreferred(lang string) bool {
	_, ok := c.priority[language.ToISO3(lang)]
	return ok
}

// BestPreferredSubtitle returns the preferred-language subtitle with the lowest
// priority number. Ties go to the first track in container order.
func (c Classifier) BestPreferredSubtitle(list tracks.List) (tracks.Track, bool) {
	var (
		best     tracks.Track
		bestPrio int
		found    bool
	)
	for _, t := range list.OfType(tracks.Subtitle) {
		prio, ok := c.priority[t.Language]
		if !ok {
			continue
		}
		if !found || prio < bestPrio {
			best, bestPrio, found = t, prio, true
		}
	}
	return best, found
}

func (c Classifier) preferredDefault(list tracks.List) bool {
	for _, t := range list.OfType(tracks.Subtitle) {
		if _, ok := c.priority[t.Language]; ok && t.Default {
			return true
		}
	}
	return false
}

// ClassifyContainer decides what an existing container at path needs. sidecar
// is the matching external subtitle file, or "".
func (c Classifier) ClassifyContainer(path string, list tracks.List, sidecar string) Decision {
	d := c.base(list)
	best, hasPreferred := c.BestPreferredSubtitle(list)
	d.HasPreferredSubtitle = hasPreferred

	switch {
	case !hasPreferred && sidecar != "":
		d.NeedsSubtitle = true
		d.SubtitleSource = sidecar
		d.SubtitleLanguage = c.SidecarLanguage(path, sidecar)
	case hasPreferred && !c.preferredDefault(list):
		d.NeedsDefaultFix = true
		d.ExistingSubtitleIndex = best.Index
	}
	return d
}

// ClassifyVideo decides how to package a bare video file. It always builds a
// container; the sidecar, when present, becomes the default subtitle.
func (c Classifier) ClassifyVideo(path string, list tracks.List, sidecar string) Decision {
	d := c.base(list)
	d.BuildContainer = true
	best, hasPreferred := c.BestPreferredSubtitle(list)
	d.HasPreferredSubtitle = hasPreferred

	switch {
	case sidecar != "":
		d.NeedsSubtitle = true
		d.SubtitleSource = sidecar
		d.SubtitleLanguage = c.SidecarLanguage(path, sidecar)
	case hasPreferred && !c.preferredDefault(list):
		d.NeedsDefaultFix = true
		d.ExistingSubtitleIndex = best.Index
	}
	return d
}

func (c Classifier) base(list tracks.List) Decision {
	d := Decision{
		ExistingSubtitleIndex: -1,
		AudioIndex:            -1,
		TargetAudioCodec:      c.target,
	}
	if first, ok := list.FirstAudio(); ok {
		d.AudioIndex = first.Index
		d.SourceAudioCodec = first.Codec
		d.NeedsAudioTranscode = c.target != "" && !audio.Matches(first.Codec, c.target)
	}
	return d
}

// SidecarLanguage infers the language of a sidecar subtitle. A suffix naming a
// preferred language ("movie.hr.srt", "movie_slv.srt") wins; anything else is
// tagged with the primary preferred language.
func (c Classifier) SidecarLanguage(mediaPath, sidecar string) string {
	stem := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	name := strings.TrimSuffix(filepath.Base(sidecar), filepath.Ext(sidecar))
	if rest, ok := strings.CutPrefix(name, stem); ok {
		for _, token := range strings.FieldsFunc(rest, func(r rune) bool { return r == '.' || r == '_' || r == '-' }) {
			if lang := language.ToISO3(token); c.IsPreferred(lang) {
				return lang
			}
		}
	}
	if len(c.preferred) == 0 {
		return language.Undetermined
	}
	return c.preferred[0]
}
