package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Tools names the external binaries mkvsmith orchestrates. Values may be bare
// command names resolved through PATH or absolute paths.
type Tools struct {
	FFprobe         string `toml:"ffprobe"`
	Mkvmerge        string `toml:"mkvmerge"`
	FFmpeg          string `toml:"ffmpeg"`
	FlatpakFallback bool   `toml:"flatpak_fallback"`
}

// Batch contains the policy applied by unattended batch mode.
type Batch struct {
	// PreferredLanguages orders subtitle languages by priority (first wins).
	PreferredLanguages []string `toml:"preferred_languages"`
	TargetAudioCodec   string   `toml:"target_audio_codec"`
	AudioBitrate       string   `toml:"audio_bitrate"`
	VideoExtensions    []string `toml:"video_extensions"`
	SubtitleSuffixes   []string `toml:"subtitle_suffixes"`
	DeleteSources      bool     `toml:"delete_sources"`
}

// Edit contains settings for single-file edits.
type Edit struct {
	OutputPrefix string `toml:"output_prefix"`
}

// Convert contains the defaults for whole-file re-encodes.
type Convert struct {
	VideoCodec   string `toml:"video_codec"`
	CRF          int    `toml:"crf"`
	AudioCodec   string `toml:"audio_codec"`
	AudioBitrate string `toml:"audio_bitrate"`
	// AV1Encoder selects ffmpeg (libaom-av1) or the drapto library for av1.
	AV1Encoder string `toml:"av1_encoder"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for mkvsmith.
//
// Configuration sections:
//   - Tools: ffprobe, mkvmerge and ffmpeg binaries
//   - Batch: preferred languages, target audio codec, discovery rules
//   - Edit: defaults for single-file edits
//   - Convert: codec defaults for whole-file re-encodes
//   - Logging: log format, level, and optional file output
type Config struct {
	Tools   Tools   `toml:"tools"`
	Batch   Batch   `toml:"batch"`
	Edit    Edit    `toml:"edit"`
	Convert Convert `toml:"convert"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error: defaults apply and exists is false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// resolveConfigPath picks the file to load: an explicit path (which need not
// exist), then MKVSMITH_CONFIG, then the user config, then ./mkvsmith.toml.
// When no candidate exists the user config path is reported.
func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv(configEnvVar))
	}
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	userPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}
	for _, candidate := range []string{userPath, projectPath} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true, nil
		}
	}
	return userPath, false, nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// IsVideoExtension reports whether ext (with leading dot) names a convertible video.
func (c *Config) IsVideoExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, candidate := range c.Batch.VideoExtensions {
		if candidate == ext {
			return true
		}
	}
	return false
}
