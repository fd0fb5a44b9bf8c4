package remux

import (
	"strconv"

	"mkvsmith/internal/media/tracks"
)

const codecCopy = "copy"

// attachmentStreams selects font and cover attachments, if any. They follow
// the mapped tracks so track positions are unchanged.
const attachmentStreams = "0:t?"

// Matroska cannot carry mov_text; such streams are converted to SubRip.
const (
	codecMovText = "mov_text"
	codecSubRip  = "srt"
)

func ffmpegArgs(p TranscodePass) []string {
	args := []string{"-hide_banner", "-nostdin", "-y", "-loglevel", "error", "-i", p.Input}
	for _, m := range p.Streams {
		args = append(args, "-map", "0:"+strconv.Itoa(m.Index))
	}
	args = append(args, "-map", attachmentStreams)
	for _, m := range p.Streams {
		pos := strconv.Itoa(m.Position)
		args = append(args, "-c:"+pos, m.Codec)
		if m.Transcoded() && m.Bitrate != "" {
			args = append(args, "-b:"+pos, m.Bitrate)
		}
	}
	args = append(args, "-c:t", codecCopy)
	for _, m := range p.Streams {
		disposition := "0"
		if m.Default {
			disposition = "default"
		}
		args = append(args, "-disposition:"+strconv.Itoa(m.Position), disposition)
	}
	return append(args, p.Output)
}

// streamCodec picks the codec for a copied stream.
func streamCodec(t tracks.Track) string {
	if t.Type == tracks.Subtitle && t.Codec == codecMovText {
		return codecSubRip
	}
	return codecCopy
}
