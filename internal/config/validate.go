package config

import (
	"errors"
	"fmt"
	"strings"

	"mkvsmith/internal/media/audio"
	"mkvsmith/internal/media/video"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateBatch(); err != nil {
		return err
	}
	if err := c.validateEdit(); err != nil {
		return err
	}
	if err := c.validateConvert(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTools() error {
	if strings.TrimSpace(c.Tools.Mkvmerge) == "" {
		return errors.New("tools.mkvmerge must be set")
	}
	if strings.TrimSpace(c.Tools.FFprobe) == "" {
		return errors.New("tools.ffprobe must be set")
	}
	if strings.TrimSpace(c.Tools.FFmpeg) == "" {
		return errors.New("tools.ffmpeg must be set")
	}
	return nil
}

func (c *Config) validateBatch() error {
	if len(c.Batch.PreferredLanguages) == 0 {
		return errors.New("batch.preferred_languages must include at least one recognized language")
	}
	if _, ok := audio.Lookup(c.Batch.TargetAudioCodec); !ok {
		return fmt.Errorf("batch.target_audio_codec must be one of %s", strings.Join(audio.Supported(), ", "))
	}
	if !strings.HasSuffix(c.Batch.AudioBitrate, "k") {
		return fmt.Errorf("batch.audio_bitrate must be expressed in kbit/s (e.g. 192k), got %q", c.Batch.AudioBitrate)
	}
	if len(c.Batch.VideoExtensions) == 0 {
		return errors.New("batch.video_extensions must include at least one extension")
	}
	for _, ext := range c.Batch.VideoExtensions {
		if ext == ContainerExtension {
			return errors.New("batch.video_extensions must not include .mkv")
		}
	}
	for _, suffix := range c.Batch.SubtitleSuffixes {
		if !strings.HasSuffix(strings.ToLower(suffix), ".srt") {
			return fmt.Errorf("batch.subtitle_suffixes entries must end in .srt, got %q", suffix)
		}
	}
	return nil
}

func (c *Config) validateEdit() error {
	if strings.ContainsAny(c.Edit.OutputPrefix, `/\`) {
		return errors.New("edit.output_prefix must not contain path separators")
	}
	return nil
}

func (c *Config) validateConvert() error {
	if c.Convert.VideoCodec != video.Copy {
		codec, ok := video.Lookup(c.Convert.VideoCodec)
		if !ok {
			return fmt.Errorf("convert.video_codec must be copy or one of %s", strings.Join(video.Supported(), ", "))
		}
		if !codec.ValidCRF(c.Convert.CRF) {
			return fmt.Errorf("convert.crf must be between 0 and %d for %s, got %d", codec.MaxCRF, codec.Name, c.Convert.CRF)
		}
	}
	if c.Convert.AudioCodec != audio.Copy {
		if _, ok := audio.Lookup(c.Convert.AudioCodec); !ok {
			return fmt.Errorf("convert.audio_codec must be copy or one of %s", strings.Join(audio.Supported(), ", "))
		}
	}
	if !strings.HasSuffix(c.Convert.AudioBitrate, "k") {
		return fmt.Errorf("convert.audio_bitrate must be expressed in kbit/s (e.g. 192k), got %q", c.Convert.AudioBitrate)
	}
	switch c.Convert.AV1Encoder {
	case "ffmpeg", "drapto":
	default:
		return fmt.Errorf("convert.av1_encoder must be ffmpeg or drapto, got %q", c.Convert.AV1Encoder)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
