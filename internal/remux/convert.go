package remux

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"mkvsmith/internal/deps"
	"mkvsmith/internal/logging"
	"mkvsmith/internal/media/audio"
	"mkvsmith/internal/media/tracks"
	"mkvsmith/internal/media/video"
	"mkvsmith/internal/services"
)

// Engine selects the encoder behind a Conversion.
type Engine string

const (
	EngineFFmpeg Engine = "ffmpeg"
	EngineDrapto Engine = "drapto"
)

// ConvertOptions selects the targets of a whole-file re-encode. Codec names
// may be "copy" to keep the streams as they are.
type ConvertOptions struct {
	VideoCodec   string
	CRF          int
	AudioCodec   string
	AudioBitrate string
	// AV1Engine chooses how av1 video is produced; empty means ffmpeg.
	AV1Engine Engine
}

// Conversion re-encodes every stream of Input into a new Matroska file.
// A nil Video or Audio copies that stream type.
type Conversion struct {
	Input   string
	Output  string
	Engine  Engine
	Video   *video.Codec
	CRF     int
	Audio   *audio.Codec
	Bitrate string
	// Subtitles holds the codec per subtitle stream, in subtitle order.
	Subtitles []string
}

// CompileConversion validates opts and builds the Conversion of source into
// output. Inspection is only used to convert subtitles Matroska cannot carry;
// when it fails the subtitles are copied.
func (c *Compiler) CompileConversion(ctx context.Context, source, output string, opts ConvertOptions) (*Conversion, error) {
	if strings.TrimSpace(output) == "" {
		return nil, services.Wrap(services.ErrValidation, "compiler", "convert", "no output path", nil)
	}
	if err := requireFile(source); err != nil {
		return nil, err
	}
	conv := &Conversion{Input: source, Output: output, Engine: EngineFFmpeg}

	if name := strings.TrimSpace(opts.VideoCodec); name != "" && !strings.EqualFold(name, video.Copy) {
		codec, ok := video.Lookup(name)
		if !ok {
			return nil, services.Wrap(services.ErrValidation, "compiler", "convert",
				fmt.Sprintf("unsupported video codec %q (supported: copy, %s)", name, strings.Join(video.Supported(), ", ")), nil)
		}
		if !codec.ValidCRF(opts.CRF) {
			return nil, services.Wrap(services.ErrValidation, "compiler", "convert",
				fmt.Sprintf("crf %d out of range 0-%d for %s", opts.CRF, codec.MaxCRF, codec.Name), nil)
		}
		conv.Video = &codec
		conv.CRF = opts.CRF
	}
	if name := strings.TrimSpace(opts.AudioCodec); name != "" && !strings.EqualFold(name, audio.Copy) {
		codec, ok := audio.Lookup(name)
		if !ok {
			return nil, services.Wrap(services.ErrValidation, "compiler", "convert",
				fmt.Sprintf("unsupported audio codec %q (supported: copy, %s)", name, strings.Join(audio.Supported(), ", ")), nil)
		}
		conv.Audio = &codec
		conv.Bitrate = codec.Bitrate(opts.AudioBitrate)
	}
	switch opts.AV1Engine {
	case "", EngineFFmpeg, EngineDrapto:
	default:
		return nil, services.Wrap(services.ErrValidation, "compiler", "convert",
			fmt.Sprintf("unknown av1 encoder %q (supported: ffmpeg, drapto)", opts.AV1Engine), nil)
	}
	if opts.AV1Engine == EngineDrapto {
		if conv.Video == nil || conv.Video.Name != "av1" {
			return nil, services.Wrap(services.ErrValidation, "compiler", "convert", "the drapto engine only produces av1 video", nil)
		}
		conv.Engine = EngineDrapto
	}

	list, err := c.src.Inspect(ctx, source)
	if err != nil {
		logging.WarnWithContext(c.logger, "inspection failed; copying subtitles unchanged", "convert_inspect_failed",
			logging.String(logging.FieldFile, source),
			logging.Error(err),
			logging.String(logging.FieldImpact, "mov_text subtitles would make the encode fail"),
			logging.String(logging.FieldErrorHint, "verify ffprobe is available"),
		)
	}
	for _, t := range list.OfType(tracks.Subtitle) {
		conv.Subtitles = append(conv.Subtitles, streamCodec(t))
	}
	return conv, nil
}

// Args returns the ffmpeg arguments writing the conversion to output. Data
// streams are left out because Matroska cannot hold them.
func (v *Conversion) Args(output string) []string {
	args := []string{"-hide_banner", "-nostdin", "-y", "-loglevel", "error", "-i", v.Input}
	args = append(args, "-map", "0:v?", "-map", "0:a?", "-map", "0:s?", "-map", attachmentStreams)
	args = append(args, "-c", codecCopy)
	if v.Video != nil {
		args = append(args, "-c:v", v.Video.Encoder, "-crf", strconv.Itoa(v.CRF))
		if v.Video.ZeroBitrate {
			args = append(args, "-b:v", "0")
		}
	}
	if v.Audio != nil {
		args = append(args, "-c:a", v.Audio.Encoder)
		if v.Bitrate != "" {
			args = append(args, "-b:a", v.Bitrate)
		}
	}
	for i, codec := range v.Subtitles {
		if codec != codecCopy {
			args = append(args, "-c:s:"+strconv.Itoa(i), codec)
		}
	}
	return append(args, output)
}

// Command renders the conversion as one argument vector for dry runs. The
// drapto engine runs in-process; its line names the library call.
func (v *Conversion) Command(tc deps.Toolchain) []string {
	if v.Engine == EngineDrapto {
		return []string{"drapto", "encode", "--input", v.Input, "--output", v.Output}
	}
	return tc.FFmpeg.Args(v.Args(v.Output)...)
}
