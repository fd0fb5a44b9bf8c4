package video

import (
	"sort"
	"strings"
)

// Copy keeps the video stream as it is.
const Copy = "copy"

// CRF quality presets. Lower is better quality and a larger file.
const (
	CRFHigh   = 18
	CRFMedium = 23
	CRFLow    = 28
)

// Codec describes how a target video codec is produced by ffmpeg.
type Codec struct {
	Name    string
	Encoder string
	MaxCRF  int
	// ZeroBitrate marks encoders that only run in constant-quality mode when
	// the video bitrate is pinned to 0.
	ZeroBitrate bool
}

var codecs = map[string]Codec{
	"h264": {Name: "h264", Encoder: "libx264", MaxCRF: 51},
	"h265": {Name: "h265", Encoder: "libx265", MaxCRF: 51},
	"vp9":  {Name: "vp9", Encoder: "libvpx-vp9", MaxCRF: 63, ZeroBitrate: true},
	"av1":  {Name: "av1", Encoder: "libaom-av1", MaxCRF: 63, ZeroBitrate: true},
}

var aliases = map[string]string{
	"avc":       "h264",
	"x264":      "h264",
	"hevc":      "h265",
	"x265":      "h265",
	"h265/hevc": "h265",
}

// Lookup returns the codec table entry for name, matched case-insensitively.
func Lookup(name string) (Codec, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	c, ok := codecs[key]
	return c, ok
}

// Supported lists the canonical codec names accepted by Lookup.
func Supported() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidCRF reports whether crf is within the encoder's quality scale.
func (c Codec) ValidCRF(crf int) bool {
	return crf >= 0 && crf <= c.MaxCRF
}
