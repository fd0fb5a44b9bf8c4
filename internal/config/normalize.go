package config

import (
	"fmt"
	"os"
	"strings"

	"mkvsmith/internal/language"
)

func (c *Config) normalize() error {
	c.normalizeTools()
	c.normalizeBatch()
	c.normalizeEdit()
	c.normalizeConvert()
	return c.normalizeLogging()
}

func (c *Config) normalizeTools() {
	c.Tools.FFprobe = toolValue(c.Tools.FFprobe, "MKVSMITH_FFPROBE", defaultFFprobeBinary)
	c.Tools.Mkvmerge = toolValue(c.Tools.Mkvmerge, "MKVSMITH_MKVMERGE", defaultMkvmergeBinary)
	c.Tools.FFmpeg = toolValue(c.Tools.FFmpeg, "MKVSMITH_FFMPEG", defaultFFmpegBinary)
}

// toolValue prefers the environment override, then the configured value, then
// the default command name. Paths containing "~" are expanded.
func toolValue(configured, envKey, fallback string) string {
	value := strings.TrimSpace(configured)
	if env, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(env) != "" {
		value = strings.TrimSpace(env)
	}
	if value == "" {
		return fallback
	}
	if strings.HasPrefix(value, "~") {
		if expanded, err := expandPath(value); err == nil {
			return expanded
		}
	}
	return value
}

func (c *Config) normalizeBatch() {
	c.Batch.PreferredLanguages = language.NormalizeList(c.Batch.PreferredLanguages)
	c.Batch.TargetAudioCodec = strings.ToLower(strings.TrimSpace(c.Batch.TargetAudioCodec))
	if c.Batch.TargetAudioCodec == "" {
		c.Batch.TargetAudioCodec = defaultTargetAudioCodec
	}
	c.Batch.AudioBitrate = strings.ToLower(strings.TrimSpace(c.Batch.AudioBitrate))
	if c.Batch.AudioBitrate == "" {
		c.Batch.AudioBitrate = defaultAudioBitrate
	}

	exts := make([]string, 0, len(c.Batch.VideoExtensions))
	seen := make(map[string]struct{}, len(c.Batch.VideoExtensions))
	for _, ext := range c.Batch.VideoExtensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	c.Batch.VideoExtensions = exts

	suffixes := make([]string, 0, len(c.Batch.SubtitleSuffixes))
	for _, suffix := range c.Batch.SubtitleSuffixes {
		if trimmed := strings.TrimSpace(suffix); trimmed != "" {
			suffixes = append(suffixes, trimmed)
		}
	}
	c.Batch.SubtitleSuffixes = suffixes
}

func (c *Config) normalizeEdit() {
	c.Edit.OutputPrefix = strings.TrimSpace(c.Edit.OutputPrefix)
}

func (c *Config) normalizeConvert() {
	c.Convert.VideoCodec = lowerOr(c.Convert.VideoCodec, defaultConvertVideo)
	c.Convert.AudioCodec = lowerOr(c.Convert.AudioCodec, defaultConvertAudio)
	c.Convert.AudioBitrate = lowerOr(c.Convert.AudioBitrate, defaultAudioBitrate)
	c.Convert.AV1Encoder = lowerOr(c.Convert.AV1Encoder, defaultAV1Encoder)
}

func lowerOr(value, fallback string) string {
	if value = strings.ToLower(strings.TrimSpace(value)); value != "" {
		return value
	}
	return fallback
}

func (c *Config) normalizeLogging() error {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
		c.Logging.Format = "json"
	default:
		c.Logging.Format = format
	}
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level

	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = ""
		return nil
	}
	var err error
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
