package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"mkvsmith/internal/media/tracks"
	"mkvsmith/internal/ops"
)

// Decision is the classifier's verdict for one file. It is computed fresh per
// file and never persisted.
type Decision struct {
	// BuildContainer is set for bare video files: a new container is written
	// beside the source.
	BuildContainer      bool
	NeedsSubtitle       bool
	NeedsDefaultFix     bool
	NeedsAudioTranscode bool

	// HasPreferredSubtitle reports a preferred-language subtitle in the file.
	HasPreferredSubtitle bool

	SubtitleSource   string
	SubtitleLanguage string
	// ExistingSubtitleIndex is the global index of the best preferred
	// subtitle, or -1.
	ExistingSubtitleIndex int

	// AudioIndex is the global index of the first audio track, or -1.
	AudioIndex       int
	SourceAudioCodec string
	TargetAudioCodec string
}

// NoAction reports that the file already satisfies policy.
func (d Decision) NoAction() bool {
	return !d.BuildContainer && !d.NeedsSubtitle && !d.NeedsDefaultFix && !d.NeedsAudioTranscode
}

// Queue translates the decision into edit operations.
func (d Decision) Queue() *ops.Queue {
	q := ops.NewQueue()
	if d.NeedsAudioTranscode && d.AudioIndex >= 0 {
		q.Add(ops.TranscodeAudio{Index: d.AudioIndex, Codec: d.TargetAudioCodec})
	}
	switch {
	case d.NeedsSubtitle && d.SubtitleSource != "":
		q.Add(ops.AddExternalTrack{
			Type:     tracks.Subtitle,
			Path:     d.SubtitleSource,
			Language: d.SubtitleLanguage,
			Default:  true,
		})
	case d.NeedsDefaultFix && d.ExistingSubtitleIndex >= 0:
		q.Add(ops.SetDefault{Type: tracks.Subtitle, Index: d.ExistingSubtitleIndex})
	}
	return q
}

// WithoutTranscode drops the audio re-encode from the decision.
func (d Decision) WithoutTranscode() Decision {
	d.NeedsAudioTranscode = false
	return d
}

// Summary describes the planned changes for logs and reports.
func (d Decision) Summary() string {
	var parts []string
	if d.BuildContainer {
		parts = append(parts, "build container")
	}
	if d.NeedsAudioTranscode {
		parts = append(parts, fmt.Sprintf("transcode audio %s to %s", d.SourceAudioCodec, d.TargetAudioCodec))
	}
	if d.NeedsSubtitle {
		parts = append(parts, fmt.Sprintf("add subtitle %s (%s)", filepath.Base(d.SubtitleSource), d.SubtitleLanguage))
	}
	if d.NeedsDefaultFix {
		parts = append(parts, fmt.Sprintf("set default subtitle track %d", d.ExistingSubtitleIndex))
	}
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}
