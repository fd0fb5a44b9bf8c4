package audio

import (
	"sort"
	"strings"
)

// Copy keeps an audio stream as it is.
const Copy = "copy"

// DefaultBitrate applies to lossy targets when no bitrate is configured.
const DefaultBitrate = "192k"

// Codec describes how a target audio codec is produced by ffmpeg.
type Codec struct {
	Name     string
	Encoder  string
	Lossless bool
}

var codecs = map[string]Codec{
	"aac":    {Name: "aac", Encoder: "aac"},
	"ac3":    {Name: "ac3", Encoder: "ac3"},
	"mp3":    {Name: "mp3", Encoder: "libmp3lame"},
	"flac":   {Name: "flac", Encoder: "flac", Lossless: true},
	"opus":   {Name: "opus", Encoder: "libopus"},
	"vorbis": {Name: "vorbis", Encoder: "libvorbis"},
}

// Lookup returns the codec table entry for name, matched case-insensitively.
func Lookup(name string) (Codec, bool) {
	c, ok := codecs[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Supported lists the target codec names accepted by Lookup.
func Supported() []string {
	names := make([]string, 0, len(codecs))
	for name := range codecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bitrate returns the bitrate to request for the codec, or "" when the codec
// is lossless and takes no bitrate directive.
func (c Codec) Bitrate(configured string) string {
	if c.Lossless {
		return ""
	}
	if trimmed := strings.TrimSpace(configured); trimmed != "" {
		return trimmed
	}
	return DefaultBitrate
}

// Matches reports whether an inspected codec name already satisfies the target.
func Matches(actual, target string) bool {
	return strings.EqualFold(strings.TrimSpace(actual), strings.TrimSpace(target))
}
